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

// broadcastBinaryOp is a binary operator with numpy broadcasting. The
// smaller operand is expanded into a staging buffer as it is copied in.
type broadcastBinaryOp struct {
	name string
}

var broadcastBinaryOps = []broadcastBinaryOp{
	{name: "broadcast_add"},
	{name: "broadcast_sub"},
	{name: "broadcast_mul"},
	{name: "broadcast_div"},
}

func (o broadcastBinaryOp) Name() string                  { return o.name }
func (o broadcastBinaryOp) Schedule() tiling.ScheduleMode { return tiling.ScheduleBroadcast }
func (o broadcastBinaryOp) NumInputs() int                { return 2 }

func (o broadcastBinaryOp) InferShape(in []Shape, _ Options) (Shape, error) {
	return BroadcastShapes(in[0], in[1])
}

func (o broadcastBinaryOp) InferDType(dt DType, _ Options) (DType, error) {
	if dt == Bool {
		return InvalidDType, &tiling.ConfigError{Field: "dtype", Reason: fmt.Sprintf("%s does not support bool", o.name)}
	}
	return dt, nil
}

func (o broadcastBinaryOp) Workload(_ []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
	n, err := out.NumElements()
	if err != nil {
		return tiling.WorkloadDescriptor{}, err
	}
	return tiling.WorkloadDescriptor{
		TotalElements:        n,
		ElementBytes:         dt.Size(),
		TempBufferMultiplier: 4, // two inputs, output, broadcast staging
		BufferingFactor:      opts.bufferingFactor(),
	}, nil
}

// broadcastToOp expands one tensor to Options.Target.
type broadcastToOp struct{}

func (broadcastToOp) Name() string                  { return "broadcast_to" }
func (broadcastToOp) Schedule() tiling.ScheduleMode { return tiling.ScheduleBroadcast }
func (broadcastToOp) NumInputs() int                { return 1 }

func (broadcastToOp) InferShape(in []Shape, opts Options) (Shape, error) {
	if opts.Target == nil {
		return nil, shapeErrorf("broadcast_to needs a target shape")
	}
	if err := opts.Target.Validate(); err != nil {
		return nil, err
	}
	out, err := BroadcastShapes(in[0], opts.Target)
	if err != nil {
		return nil, err
	}
	if !out.Equal(opts.Target) {
		return nil, shapeErrorf("%s does not broadcast to %s", in[0], opts.Target)
	}
	return out, nil
}

func (broadcastToOp) InferDType(dt DType, _ Options) (DType, error) { return dt, nil }

func (broadcastToOp) Workload(_ []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
	n, err := out.NumElements()
	if err != nil {
		return tiling.WorkloadDescriptor{}, err
	}
	return tiling.WorkloadDescriptor{
		TotalElements:        n,
		ElementBytes:         dt.Size(),
		TempBufferMultiplier: 2,
		BufferingFactor:      opts.bufferingFactor(),
	}, nil
}
