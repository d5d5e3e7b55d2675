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
	"math/bits"
)

// Buffering factors accepted by WorkloadDescriptor.
const (
	SingleBuffer uint32 = 1
	DoubleBuffer uint32 = 2
)

// WorkloadDescriptor describes one operator instance to be tiled.
type WorkloadDescriptor struct {
	TotalElements uint64 // Elements to process, may be zero
	ElementBytes  uint32 // Width of one element in bytes

	// InnerDimLength is the row length for row-structured ops. Tiles are
	// sized in whole rows when it is set. Zero means the op has no row
	// structure.
	InnerDimLength uint64

	// TempBufferMultiplier is how many buffer-widths of scratch one logical
	// element occupies while the kernel computes (inputs, output and
	// temporaries). At least 1.
	TempBufferMultiplier uint32

	BufferingFactor uint32 // SingleBuffer or DoubleBuffer
}

// HasInnerDim reports whether the workload is row-structured.
func (wl WorkloadDescriptor) HasInnerDim() bool {
	return wl.InnerDimLength > 0
}

// Validate checks the workload on its own and returns a *ConfigError for the
// first problem found.
func (wl WorkloadDescriptor) Validate() error {
	switch {
	case wl.ElementBytes == 0:
		return configErrorf("ElementBytes", "must be positive")
	case wl.TempBufferMultiplier == 0:
		return configErrorf("TempBufferMultiplier", "must be at least 1")
	case wl.BufferingFactor != SingleBuffer && wl.BufferingFactor != DoubleBuffer:
		return configErrorf("BufferingFactor", "must be 1 or 2, got %d", wl.BufferingFactor)
	}
	if _, err := wl.TotalBytes(); err != nil {
		return err
	}
	return nil
}

// TotalBytes returns TotalElements*ElementBytes, or a *ConfigError if the
// product does not fit in 64 bits.
func (wl WorkloadDescriptor) TotalBytes() (uint64, error) {
	hi, lo := bits.Mul64(wl.TotalElements, uint64(wl.ElementBytes))
	if hi != 0 {
		return 0, configErrorf("TotalElements", "%d elements of %d bytes overflow 64 bits", wl.TotalElements, wl.ElementBytes)
	}
	return lo, nil
}

// AlignmentElements returns how many elements fill one aligned block of hw.
// The block must hold a whole number of elements.
func (wl WorkloadDescriptor) AlignmentElements(hw HardwareProfile) (uint64, error) {
	if hw.AlignmentBytes == 0 {
		return 0, configErrorf("AlignmentBytes", "must be positive")
	}
	if wl.ElementBytes == 0 {
		return 0, configErrorf("ElementBytes", "must be positive")
	}
	if wl.ElementBytes > hw.AlignmentBytes || hw.AlignmentBytes%wl.ElementBytes != 0 {
		return 0, configErrorf("ElementBytes", "%d-byte elements do not evenly fill a %d-byte block", wl.ElementBytes, hw.AlignmentBytes)
	}
	return uint64(hw.AlignmentBytes / wl.ElementBytes), nil
}

func (wl WorkloadDescriptor) String() string {
	s := fmt.Sprintf("elements=%d x %dB, temp=x%d, buffering=x%d", wl.TotalElements, wl.ElementBytes, wl.TempBufferMultiplier, wl.BufferingFactor)
	if wl.HasInnerDim() {
		s += fmt.Sprintf(", row=%d", wl.InnerDimLength)
	}
	return s
}
