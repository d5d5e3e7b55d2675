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

	"github.com/ajroetker/go-tiling/tiling"
)

// transposeOp permutes axes. Tiles follow the output layout, so whole output
// rows are kept together.
type transposeOp struct{}

func (transposeOp) Name() string                  { return "transpose" }
func (transposeOp) Schedule() tiling.ScheduleMode { return tiling.ScheduleTranspose }
func (transposeOp) NumInputs() int                { return 1 }

func (transposeOp) InferShape(in []Shape, opts Options) (Shape, error) {
	perm, err := resolvePerm(in[0].Rank(), opts.Perm)
	if err != nil {
		return nil, err
	}
	out := make(Shape, len(perm))
	for i, axis := range perm {
		out[i] = in[0][axis]
	}
	return out, nil
}

func (transposeOp) InferDType(dt DType, _ Options) (DType, error) { return dt, nil }

func (transposeOp) Workload(_ []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
	n, err := out.NumElements()
	if err != nil {
		return tiling.WorkloadDescriptor{}, err
	}
	return tiling.WorkloadDescriptor{
		TotalElements:        n,
		ElementBytes:         dt.Size(),
		InnerDimLength:       innerDimOf(out),
		TempBufferMultiplier: 2,
		BufferingFactor:      opts.bufferingFactor(),
	}, nil
}

// resolvePerm checks that perm is a permutation of [0, rank). A nil perm
// reverses the axes.
func resolvePerm(rank int, perm []int) ([]int, error) {
	if perm == nil {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
		return perm, nil
	}
	if len(perm) != rank {
		return nil, &tiling.ConfigError{Field: "perm", Reason: fmt.Sprintf("has %d axes, tensor has %d", len(perm), rank)}
	}
	seen := make([]bool, rank)
	for _, axis := range perm {
		if axis < 0 || axis >= rank || seen[axis] {
			return nil, &tiling.ConfigError{Field: "perm", Reason: fmt.Sprintf("%v is not a permutation of %d axes", perm, rank)}
		}
		seen[axis] = true
	}
	return perm, nil
}
