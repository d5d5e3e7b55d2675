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

package ops

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/x448/float16"

	"github.com/ajroetker/go-tiling/tiling"
)

// DType is the element type of an operator's tensors.
type DType int

const (
	// InvalidDType is the zero value; it is never a valid element type.
	InvalidDType DType = iota
	Float32
	Float16
	BFloat16
	Float64
	Int8
	Uint8
	Int32
	Int64
	Bool
)

var dtypeNames = map[DType]string{
	Float32:  "float32",
	Float16:  "float16",
	BFloat16: "bfloat16",
	Float64:  "float64",
	Int8:     "int8",
	Uint8:    "uint8",
	Int32:    "int32",
	Int64:    "int64",
	Bool:     "bool",
}

// String returns the canonical lower-case name, e.g. "float16".
func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return "invalid"
}

// ParseDType parses a canonical name or one of the short aliases
// ("f32", "fp16", "bf16", "i32", ...).
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "f32", "fp32":
		return Float32, nil
	case "float16", "f16", "fp16", "half":
		return Float16, nil
	case "bfloat16", "bf16":
		return BFloat16, nil
	case "float64", "f64", "fp64", "double":
		return Float64, nil
	case "int8", "i8":
		return Int8, nil
	case "uint8", "u8":
		return Uint8, nil
	case "int32", "i32":
		return Int32, nil
	case "int64", "i64":
		return Int64, nil
	case "bool":
		return Bool, nil
	}
	return InvalidDType, &tiling.ConfigError{Field: "dtype", Reason: fmt.Sprintf("unknown dtype %q", s)}
}

// Size returns the storage width of one element in bytes, 0 for InvalidDType.
func (d DType) Size() uint32 {
	switch d {
	case Float32:
		return uint32(unsafe.Sizeof(float32(0)))
	case Float16, BFloat16:
		// Both 16-bit float formats share the storage of float16.Float16.
		return uint32(unsafe.Sizeof(float16.Float16(0)))
	case Float64:
		return uint32(unsafe.Sizeof(float64(0)))
	case Int8:
		return uint32(unsafe.Sizeof(int8(0)))
	case Uint8, Bool:
		return uint32(unsafe.Sizeof(uint8(0)))
	case Int32:
		return uint32(unsafe.Sizeof(int32(0)))
	case Int64:
		return uint32(unsafe.Sizeof(int64(0)))
	default:
		return 0
	}
}

// Class returns the kernel template family used in the tiling key.
func (d DType) Class() tiling.DTypeClass {
	switch d {
	case Float16:
		return tiling.DTypeClassFloat16
	case BFloat16:
		return tiling.DTypeClassBFloat16
	case Float64:
		return tiling.DTypeClassFloat64
	case Int8, Int32, Int64:
		return tiling.DTypeClassInt
	case Uint8, Bool:
		return tiling.DTypeClassByte
	default:
		return tiling.DTypeClassFloat32
	}
}

// IsFloat reports whether d is a floating-point type.
func (d DType) IsFloat() bool {
	switch d {
	case Float32, Float16, BFloat16, Float64:
		return true
	}
	return false
}

// IsValid reports whether d names a supported element type.
func (d DType) IsValid() bool {
	_, ok := dtypeNames[d]
	return ok
}

// EncodeScalar returns the bit pattern of v stored as d, zero-extended to 64
// bits. This is how scalar attributes such as a pad value are passed to the
// kernel. Integer types reject non-integral or out-of-range values.
func (d DType) EncodeScalar(v float64) (uint64, error) {
	switch d {
	case Float32:
		return uint64(math.Float32bits(float32(v))), nil
	case Float16:
		return uint64(float16.Fromfloat32(float32(v)).Bits()), nil
	case BFloat16:
		return uint64(bfloat16Bits(float32(v))), nil
	case Float64:
		return math.Float64bits(v), nil
	case Int8:
		return encodeInt(d, v, math.MinInt8, math.MaxInt8)
	case Uint8:
		return encodeInt(d, v, 0, math.MaxUint8)
	case Int32:
		return encodeInt(d, v, math.MinInt32, math.MaxInt32)
	case Int64:
		return encodeInt(d, v, math.MinInt64, math.MaxInt64)
	case Bool:
		return encodeInt(d, v, 0, 1)
	}
	return 0, &tiling.ConfigError{Field: "dtype", Reason: "cannot encode a scalar as " + d.String()}
}

func encodeInt(d DType, v, lo, hi float64) (uint64, error) {
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if v != math.Trunc(v) || v < lo || v > hi || v >= 1<<63 {
		return 0, &tiling.ConfigError{Field: "scalar", Reason: fmt.Sprintf("%v is not representable as %s", v, d)}
	}
	bitsWide := d.Size() * 8
	u := uint64(int64(v))
	if bitsWide < 64 {
		u &= 1<<bitsWide - 1
	}
	return u, nil
}

// bfloat16Bits converts f to bfloat16 with round-to-nearest-even.
func bfloat16Bits(f float32) uint16 {
	b := math.Float32bits(f)
	if f != f {
		// Keep NaN quiet after truncation.
		return uint16(b>>16) | 0x40
	}
	b += 0x7FFF + (b>>16)&1
	return uint16(b >> 16)
}
