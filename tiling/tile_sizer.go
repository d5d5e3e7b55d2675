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

// CoreClassPlan is the per-core loop schedule shared by every core of one
// class (big or small).
//
// A core walks its ElementsPerCore in TileCount buffer fills. Every fill but
// the last moves TileElementCount elements; the last moves TailElementCount.
// All four fields are zero for a core with no work.
type CoreClassPlan struct {
	ElementsPerCore  uint64
	TileElementCount uint64
	TileCount        uint64
	TailElementCount uint64
}

// IsEmpty reports whether the class has no work.
func (c CoreClassPlan) IsEmpty() bool {
	return c.ElementsPerCore == 0
}

// TileSpan returns the element offset and length of tile i within the core's
// range. PRECONDITION: i < c.TileCount.
func (c CoreClassPlan) TileSpan(i uint64) (offset, length uint64) {
	offset = i * c.TileElementCount
	if i == c.TileCount-1 {
		return offset, c.TailElementCount
	}
	return offset, c.TileElementCount
}

// TileCapacity returns the element count of a full tile: the largest
// multiple of the alignment (and of the row length, for row-structured
// workloads) that fits the buffer once the buffering factor and the
// temporary-buffer multiplier are applied.
//
// Returns *InsufficientBufferError when not even one aligned chunk fits.
func TileCapacity(hw HardwareProfile, wl WorkloadDescriptor) (uint64, error) {
	if err := wl.Validate(); err != nil {
		return 0, err
	}
	alignElems, err := wl.AlignmentElements(hw)
	if err != nil {
		return 0, err
	}

	available := hw.BufferBytes / uint64(wl.BufferingFactor)
	tile := available / (uint64(wl.ElementBytes) * uint64(wl.TempBufferMultiplier))
	tile -= tile % alignElems
	if tile == 0 {
		return 0, &InsufficientBufferError{
			BufferBytes:          hw.BufferBytes,
			BufferingFactor:      wl.BufferingFactor,
			ElementBytes:         wl.ElementBytes,
			TempBufferMultiplier: wl.TempBufferMultiplier,
			AlignmentElements:    alignElems,
		}
	}

	if wl.HasInnerDim() {
		rows := tile - tile%wl.InnerDimLength
		if rows == 0 {
			// The op budgets its buffer so that one row always fits.
			rows = wl.InnerDimLength
		}
		tile = rows
	}
	return tile, nil
}

// SizeTile computes the loop schedule of one core that owns elementsPerCore
// elements.
//
// When the whole range fits in a single tile, TileCount is 1 and the tail is
// the entire range, which may be shorter than TileElementCount. Otherwise the
// tail is the remainder, or a full tile when the range divides evenly.
func SizeTile(hw HardwareProfile, wl WorkloadDescriptor, elementsPerCore uint64) (CoreClassPlan, error) {
	tile, err := TileCapacity(hw, wl)
	if err != nil {
		return CoreClassPlan{}, err
	}
	return sizeWithCapacity(tile, elementsPerCore), nil
}

func sizeWithCapacity(tile, elementsPerCore uint64) CoreClassPlan {
	if elementsPerCore == 0 {
		return CoreClassPlan{}
	}

	plan := CoreClassPlan{
		ElementsPerCore:  elementsPerCore,
		TileElementCount: tile,
	}
	if elementsPerCore <= tile {
		plan.TileCount = 1
		plan.TailElementCount = elementsPerCore
		return plan
	}

	full := elementsPerCore / tile
	rem := elementsPerCore % tile
	if rem == 0 {
		plan.TileCount = full
		plan.TailElementCount = tile
	} else {
		plan.TileCount = full + 1
		plan.TailElementCount = rem
	}
	return plan
}
