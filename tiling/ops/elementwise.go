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

// elementwiseOp covers unary and same-shape binary operators. The kernel
// keeps one buffer per input, one for the output and temps scratch buffers
// for intermediate values.
type elementwiseOp struct {
	name      string
	inputs    int
	temps     uint32
	floatOnly bool
}

var elementwiseOps = []elementwiseOp{
	// Unary
	{name: "abs", inputs: 1},
	{name: "neg", inputs: 1},
	{name: "relu", inputs: 1},
	{name: "exp", inputs: 1, temps: 1, floatOnly: true},
	{name: "sqrt", inputs: 1, floatOnly: true},
	{name: "sigmoid", inputs: 1, temps: 2, floatOnly: true}, // exp(-x), 1+exp(-x)
	{name: "gelu", inputs: 1, temps: 3, floatOnly: true},    // tanh approximation

	// Binary
	{name: "add", inputs: 2},
	{name: "sub", inputs: 2},
	{name: "mul", inputs: 2},
	{name: "div", inputs: 2, temps: 1}, // reciprocal
	{name: "maximum", inputs: 2},
	{name: "minimum", inputs: 2},
}

func (o elementwiseOp) Name() string                  { return o.name }
func (o elementwiseOp) Schedule() tiling.ScheduleMode { return tiling.ScheduleElementwise }
func (o elementwiseOp) NumInputs() int                { return o.inputs }

func (o elementwiseOp) InferShape(in []Shape, _ Options) (Shape, error) {
	for i := 1; i < len(in); i++ {
		if !in[i].Equal(in[0]) {
			return nil, shapeErrorf("input %d shape %s differs from %s; use a broadcast op", i, in[i], in[0])
		}
	}
	return in[0].Clone(), nil
}

func (o elementwiseOp) InferDType(dt DType, _ Options) (DType, error) {
	if dt == Bool || (o.floatOnly && !dt.IsFloat()) {
		return InvalidDType, &tiling.ConfigError{Field: "dtype", Reason: fmt.Sprintf("%s does not support %s", o.name, dt)}
	}
	return dt, nil
}

func (o elementwiseOp) Workload(_ []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
	n, err := out.NumElements()
	if err != nil {
		return tiling.WorkloadDescriptor{}, err
	}
	return tiling.WorkloadDescriptor{
		TotalElements:        n,
		ElementBytes:         dt.Size(),
		TempBufferMultiplier: uint32(o.inputs) + 1 + o.temps,
		BufferingFactor:      opts.bufferingFactor(),
	}, nil
}
