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

	"github.com/ajroetker/go-tiling/tiling"
)

// padOp pads every axis with a constant. The kernel writes whole output rows,
// copying the interior from the input and filling the borders.
type padOp struct{}

func (padOp) Name() string                  { return "pad" }
func (padOp) Schedule() tiling.ScheduleMode { return tiling.SchedulePad }
func (padOp) NumInputs() int                { return 1 }

func (padOp) InferShape(in []Shape, opts Options) (Shape, error) {
	s := in[0]
	if len(opts.Pads) != 2*s.Rank() {
		return nil, &tiling.ConfigError{Field: "pads", Reason: fmt.Sprintf("has %d values, want %d for rank %d", len(opts.Pads), 2*s.Rank(), s.Rank())}
	}
	out := make(Shape, s.Rank())
	for i, d := range s {
		before, after := opts.Pads[2*i], opts.Pads[2*i+1]
		if before < 0 || after < 0 {
			return nil, &tiling.ConfigError{Field: "pads", Reason: fmt.Sprintf("axis %d has negative padding", i)}
		}
		if before > math.MaxInt64-d || after > math.MaxInt64-d-before {
			return nil, &tiling.ConfigError{Field: "pads", Reason: fmt.Sprintf("axis %d overflows", i)}
		}
		out[i] = before + d + after
	}
	return out, nil
}

func (padOp) InferDType(dt DType, _ Options) (DType, error) { return dt, nil }

func (padOp) Workload(_ []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
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
