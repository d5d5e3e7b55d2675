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

// reduceOp reduces the innermost axis. A row must never straddle two tiles,
// so the workload is row-structured with the reduced length as the row.
type reduceOp struct {
	name      string
	temps     uint32 // Scratch beyond the input buffer
	floatOnly bool
}

var reduceOps = []reduceOp{
	{name: "reduce_sum", temps: 1},                   // accumulator
	{name: "reduce_max", temps: 1},                   // running max
	{name: "reduce_mean", temps: 2, floatOnly: true}, // accumulator, scaled result
}

func (o reduceOp) Name() string                  { return o.name }
func (o reduceOp) Schedule() tiling.ScheduleMode { return tiling.ScheduleReduce }
func (o reduceOp) NumInputs() int                { return 1 }

func (o reduceOp) InferShape(in []Shape, opts Options) (Shape, error) {
	if in[0].Rank() == 0 {
		return nil, shapeErrorf("%s needs at least one axis", o.name)
	}
	out := in[0][:in[0].Rank()-1].Clone()
	if opts.KeepDims {
		out = append(out, 1)
	}
	return out, nil
}

func (o reduceOp) InferDType(dt DType, _ Options) (DType, error) {
	if dt == Bool || (o.floatOnly && !dt.IsFloat()) {
		return InvalidDType, &tiling.ConfigError{Field: "dtype", Reason: fmt.Sprintf("%s does not support %s", o.name, dt)}
	}
	return dt, nil
}

func (o reduceOp) Workload(in []Shape, _ Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
	n, err := in[0].NumElements()
	if err != nil {
		return tiling.WorkloadDescriptor{}, err
	}
	return tiling.WorkloadDescriptor{
		TotalElements:        n,
		ElementBytes:         dt.Size(),
		InnerDimLength:       innerDimOf(in[0]),
		TempBufferMultiplier: 1 + o.temps,
		BufferingFactor:      opts.bufferingFactor(),
	}, nil
}
