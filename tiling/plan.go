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

package tiling

import (
	"fmt"
	"math"
	"math/bits"

	"k8s.io/klog/v2"
)

// TilingPlan is the complete schedule handed to the kernel dispatcher.
//
// Cores [0, BigCoreCount) follow Big and cores [BigCoreCount, UsedCoreCount)
// follow Small. When there are no big cores, Big mirrors Small.
type TilingPlan struct {
	UsedCoreCount uint32
	BigCoreCount  uint32
	Big           CoreClassPlan
	Small         CoreClassPlan
	TilingKey     uint64
}

// SmallCoreCount returns the number of cores following the Small schedule.
func (p TilingPlan) SmallCoreCount() uint32 {
	return p.UsedCoreCount - p.BigCoreCount
}

// CoveredElements returns the number of elements the plan assigns across all
// cores, including alignment padding on the last block. A total that does not
// fit in 64 bits saturates at math.MaxUint64.
func (p TilingPlan) CoveredElements() uint64 {
	n, ok := p.coveredElements()
	if !ok {
		return math.MaxUint64
	}
	return n
}

// coveredElements is CoveredElements with overflow reported instead of
// saturated.
func (p TilingPlan) coveredElements() (uint64, bool) {
	bigHi, big := bits.Mul64(uint64(p.BigCoreCount), p.Big.ElementsPerCore)
	smallHi, small := bits.Mul64(uint64(p.SmallCoreCount()), p.Small.ElementsPerCore)
	sum, carry := bits.Add64(big, small, 0)
	return sum, bigHi == 0 && smallHi == 0 && carry == 0
}

// CoreRange returns the element offset and count owned by core i.
// PRECONDITION: i < p.UsedCoreCount.
func (p TilingPlan) CoreRange(i uint32) (offset, count uint64) {
	if i < p.BigCoreCount {
		return uint64(i) * p.Big.ElementsPerCore, p.Big.ElementsPerCore
	}
	offset = uint64(p.BigCoreCount)*p.Big.ElementsPerCore + uint64(i-p.BigCoreCount)*p.Small.ElementsPerCore
	return offset, p.Small.ElementsPerCore
}

// ClassFor returns the schedule followed by core i.
func (p TilingPlan) ClassFor(i uint32) CoreClassPlan {
	if i < p.BigCoreCount {
		return p.Big
	}
	return p.Small
}

func (p TilingPlan) String() string {
	return fmt.Sprintf("cores=%d big=%d key=%d big{epc=%d tile=%d n=%d tail=%d} small{epc=%d tile=%d n=%d tail=%d}",
		p.UsedCoreCount, p.BigCoreCount, p.TilingKey,
		p.Big.ElementsPerCore, p.Big.TileElementCount, p.Big.TileCount, p.Big.TailElementCount,
		p.Small.ElementsPerCore, p.Small.TileElementCount, p.Small.TileCount, p.Small.TailElementCount)
}

// KeyAxesFunc returns the key axis values for a partitioned workload, in
// the order of the schema they are encoded with.
type KeyAxesFunc func(part CorePartition, wl WorkloadDescriptor) []uint32

// DefaultKeyAxes returns the axis values of DefaultKeySchema for fields.
func DefaultKeyAxes(fields KeyFields) KeyAxesFunc {
	return func(part CorePartition, wl WorkloadDescriptor) []uint32 {
		var hasBig uint32
		if part.BigCoreCount > 0 {
			hasBig = 1
		}
		return []uint32{
			uint32(fields.DTypeClass),
			uint32(fields.Schedule),
			hasBig,
			wl.BufferingFactor - 1,
		}
	}
}

// BuildPlan partitions wl across the cores of hw, sizes the tiles of both
// core classes, encodes the default tiling key from fields and validates the
// result.
//
// Errors from each step are returned unchanged. A plan is returned only when
// it satisfies every invariant.
func BuildPlan(hw HardwareProfile, wl WorkloadDescriptor, fields KeyFields) (TilingPlan, error) {
	return BuildPlanWithSchema(hw, wl, DefaultKeySchema, DefaultKeyAxes(fields))
}

// BuildPlanWithSchema is BuildPlan with an operator-specific key schema.
func BuildPlanWithSchema(hw HardwareProfile, wl WorkloadDescriptor, schema KeySchema, axes KeyAxesFunc) (TilingPlan, error) {
	if err := hw.Validate(); err != nil {
		return TilingPlan{}, err
	}
	if err := wl.Validate(); err != nil {
		return TilingPlan{}, err
	}
	if err := schema.Validate(); err != nil {
		return TilingPlan{}, err
	}

	part, err := Partition(hw, wl)
	if err != nil {
		return TilingPlan{}, err
	}

	big, err := SizeTile(hw, wl, part.ElementsPerBigCore())
	if err != nil {
		return TilingPlan{}, err
	}
	small, err := SizeTile(hw, wl, part.ElementsPerSmallCore())
	if err != nil {
		return TilingPlan{}, err
	}

	key, err := schema.Encode(axes(part, wl)...)
	if err != nil {
		return TilingPlan{}, err
	}

	plan := TilingPlan{
		UsedCoreCount: part.UsedCoreCount,
		BigCoreCount:  part.BigCoreCount,
		Big:           big,
		Small:         small,
		TilingKey:     key,
	}
	if err := plan.Validate(hw, wl); err != nil {
		return TilingPlan{}, err
	}

	klog.V(2).InfoS("built tiling plan", "profile", hw.Name, "workload", wl.String(), "plan", plan.String())
	return plan, nil
}
