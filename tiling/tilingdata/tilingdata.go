// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tilingdata serializes a tiling plan into the fixed-layout record a
// kernel reads at launch.
//
// The record is little-endian:
//
//	offset size field
//	0      4    magic "TLD1"
//	4      2    version
//	6      2    reserved, zero
//	8      4    UsedCoreCount
//	12     4    BigCoreCount
//	16     32   big class: ElementsPerCore, TileElementCount, TileCount, TailElementCount
//	48     32   small class, same layout
//	80     8    TilingKey
package tilingdata

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-tiling/tiling"
)

const (
	// Magic opens every record.
	Magic = "TLD1"

	// Version is the layout version written by Encode.
	Version uint16 = 1

	// Size is the encoded length in bytes.
	Size = 88
)

// ErrMalformed is returned by Decode for records it cannot read.
var ErrMalformed = errors.New("tilingdata: malformed record")

var order = binary.LittleEndian

// Encode returns the launch record for p.
func Encode(p tiling.TilingPlan) []byte {
	buf := make([]byte, 0, Size)
	buf = append(buf, Magic...)
	buf = order.AppendUint16(buf, Version)
	buf = order.AppendUint16(buf, 0)
	buf = order.AppendUint32(buf, p.UsedCoreCount)
	buf = order.AppendUint32(buf, p.BigCoreCount)
	buf = appendClass(buf, p.Big)
	buf = appendClass(buf, p.Small)
	return order.AppendUint64(buf, p.TilingKey)
}

func appendClass(buf []byte, c tiling.CoreClassPlan) []byte {
	buf = order.AppendUint64(buf, c.ElementsPerCore)
	buf = order.AppendUint64(buf, c.TileElementCount)
	buf = order.AppendUint64(buf, c.TileCount)
	return order.AppendUint64(buf, c.TailElementCount)
}

// Decode parses a record produced by Encode. It checks the framing and the
// core counts; use TilingPlan.Validate to check a decoded plan against its
// profile and workload.
func Decode(data []byte) (tiling.TilingPlan, error) {
	if len(data) != Size {
		return tiling.TilingPlan{}, errors.Wrapf(ErrMalformed, "length %d, want %d", len(data), Size)
	}
	if string(data[:4]) != Magic {
		return tiling.TilingPlan{}, errors.Wrapf(ErrMalformed, "magic %q", data[:4])
	}
	if v := order.Uint16(data[4:]); v != Version {
		return tiling.TilingPlan{}, errors.Wrapf(ErrMalformed, "unsupported version %d", v)
	}

	p := tiling.TilingPlan{
		UsedCoreCount: order.Uint32(data[8:]),
		BigCoreCount:  order.Uint32(data[12:]),
		Big:           readClass(data[16:]),
		Small:         readClass(data[48:]),
		TilingKey:     order.Uint64(data[80:]),
	}
	if p.UsedCoreCount == 0 || p.BigCoreCount > p.UsedCoreCount {
		return tiling.TilingPlan{}, errors.Wrapf(ErrMalformed, "%d big cores of %d used", p.BigCoreCount, p.UsedCoreCount)
	}
	return p, nil
}

func readClass(b []byte) tiling.CoreClassPlan {
	return tiling.CoreClassPlan{
		ElementsPerCore:  order.Uint64(b[0:]),
		TileElementCount: order.Uint64(b[8:]),
		TileCount:        order.Uint64(b[16:]),
		TailElementCount: order.Uint64(b[24:]),
	}
}

// BlockDim is the number of kernel instances to launch for p: one per used
// core. A core reads its class from its index, see TilingPlan.ClassFor.
func BlockDim(p tiling.TilingPlan) uint32 {
	return p.UsedCoreCount
}
