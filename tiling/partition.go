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
	"math/bits"

	"k8s.io/klog/v2"
)

// CorePartition is the split of a workload's aligned blocks across cores.
//
// The first BigCoreCount cores each take BlocksPerBigCore blocks and the
// remaining UsedCoreCount-BigCoreCount cores take BlocksPerSmallCore. When the
// blocks divide evenly there are no big cores and both counts are equal.
type CorePartition struct {
	TotalBlocks        uint64
	UsedCoreCount      uint32
	BigCoreCount       uint32
	BlocksPerSmallCore uint64
	BlocksPerBigCore   uint64
	AlignmentElements  uint64 // Elements per block
}

// SmallCoreCount returns the number of cores in the small class.
func (p CorePartition) SmallCoreCount() uint32 {
	return p.UsedCoreCount - p.BigCoreCount
}

// ElementsPerSmallCore returns the element count assigned to each small core.
func (p CorePartition) ElementsPerSmallCore() uint64 {
	return p.BlocksPerSmallCore * p.AlignmentElements
}

// ElementsPerBigCore returns the element count assigned to each big core.
func (p CorePartition) ElementsPerBigCore() uint64 {
	return p.BlocksPerBigCore * p.AlignmentElements
}

// Partition splits wl across the cores of hw in units of aligned blocks.
//
// At least one core is always used, even for an empty workload, and never
// more cores than there are blocks. An empty workload yields a single core
// with zero blocks; callers treat that as "no work".
func Partition(hw HardwareProfile, wl WorkloadDescriptor) (CorePartition, error) {
	if hw.CoreCount == 0 {
		return CorePartition{}, configErrorf("CoreCount", "must be positive")
	}
	alignElems, err := wl.AlignmentElements(hw)
	if err != nil {
		return CorePartition{}, err
	}
	totalBytes, err := wl.TotalBytes()
	if err != nil {
		return CorePartition{}, err
	}

	align := uint64(hw.AlignmentBytes)
	totalBlocks := totalBytes / align
	if totalBytes%align != 0 {
		totalBlocks++
	}
	// Padding the last block can carry a near-limit element count past 64
	// bits; every per-core count is bounded by this product.
	if hi, _ := bits.Mul64(totalBlocks, alignElems); hi != 0 {
		return CorePartition{}, configErrorf("TotalElements", "%d elements overflow 64 bits once padded to %d-element blocks", wl.TotalElements, alignElems)
	}

	used := uint64(hw.CoreCount)
	if totalBlocks < used {
		used = max(totalBlocks, 1)
	}

	p := CorePartition{
		TotalBlocks:        totalBlocks,
		UsedCoreCount:      uint32(used),
		BigCoreCount:       uint32(totalBlocks % used),
		BlocksPerSmallCore: totalBlocks / used,
		AlignmentElements:  alignElems,
	}
	p.BlocksPerBigCore = p.BlocksPerSmallCore
	if p.BigCoreCount > 0 {
		p.BlocksPerBigCore++
	}

	if klog.V(3).Enabled() {
		klog.InfoS("partitioned workload",
			"blocks", p.TotalBlocks,
			"usedCores", p.UsedCoreCount,
			"bigCores", p.BigCoreCount,
			"blocksSmall", p.BlocksPerSmallCore,
			"blocksBig", p.BlocksPerBigCore)
	}
	return p, nil
}
