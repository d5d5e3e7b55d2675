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
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-tiling/tiling"
)

// Options carries the per-instance attributes an operator may need. Each
// operator reads only the fields it documents and ignores the rest.
type Options struct {
	DoubleBuffer bool // Plan with double buffering

	KeepDims bool // reduce: keep the reduced axis as size 1

	Perm []int // transpose: output axis i is input axis Perm[i]; nil reverses

	Pads     []int64 // pad: before/after pairs per axis, outermost first
	PadValue float64 // pad: fill value, encoded in the tensor dtype

	Target Shape // broadcast_to: shape to expand to

	CastTo DType // cast: destination dtype
}

func (o Options) bufferingFactor() uint32 {
	if o.DoubleBuffer {
		return tiling.DoubleBuffer
	}
	return tiling.SingleBuffer
}

// Op is one operator's shape inference and tiling adapter.
type Op interface {
	// Name is the registry name, e.g. "reduce_sum".
	Name() string

	// Schedule is the kernel loop structure, one axis of the tiling key.
	Schedule() tiling.ScheduleMode

	// NumInputs is the number of input tensors.
	NumInputs() int

	// InferShape computes the output shape.
	InferShape(in []Shape, opts Options) (Shape, error)

	// InferDType computes the output dtype from the input dtype.
	InferDType(dt DType, opts Options) (DType, error)

	// Workload describes the data the kernel moves through the buffer.
	Workload(in []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error)
}

// Instance is an operator applied to concrete inputs: everything needed to
// build its plan.
type Instance struct {
	Op       Op
	Output   Shape
	DType    DType // Output dtype
	Workload tiling.WorkloadDescriptor
	Fields   tiling.KeyFields

	FillBits uint64 // pad only: PadValue in the output dtype's encoding
}

// Result is the output of Tile for one operator instance.
type Result struct {
	Op       string
	Output   Shape
	DType    DType
	Workload tiling.WorkloadDescriptor
	Plan     tiling.TilingPlan
	Variant  string // Kernel variant selected by the tiling key

	FillBits uint64
}

// Prepare runs op's shape and dtype inference on in and builds its workload.
// Errors carry the operator name and still match the tiling sentinels.
func Prepare(op Op, in []Shape, dt DType, opts Options) (Instance, error) {
	inst, err := prepare(op, in, dt, opts)
	if err != nil {
		return Instance{}, errors.WithMessagef(err, "%s", op.Name())
	}
	return inst, nil
}

func prepare(op Op, in []Shape, dt DType, opts Options) (Instance, error) {
	if len(in) != op.NumInputs() {
		return Instance{}, &tiling.ConfigError{Field: "inputs", Reason: fmt.Sprintf("got %d, want %d", len(in), op.NumInputs())}
	}
	if !dt.IsValid() {
		return Instance{}, &tiling.ConfigError{Field: "dtype", Reason: "invalid dtype"}
	}
	for _, s := range in {
		if err := s.Validate(); err != nil {
			return Instance{}, err
		}
	}

	out, err := op.InferShape(in, opts)
	if err != nil {
		return Instance{}, err
	}
	outDT, err := op.InferDType(dt, opts)
	if err != nil {
		return Instance{}, err
	}
	wl, err := op.Workload(in, out, dt, opts)
	if err != nil {
		return Instance{}, err
	}
	inst := Instance{
		Op:       op,
		Output:   out,
		DType:    outDT,
		Workload: wl,
		Fields:   tiling.KeyFields{DTypeClass: dt.Class(), Schedule: op.Schedule()},
	}
	if _, ok := op.(padOp); ok {
		inst.FillBits, err = outDT.EncodeScalar(opts.PadValue)
		if err != nil {
			return Instance{}, err
		}
	}
	return inst, nil
}

// Request returns the batch planning request for inst.
func (inst Instance) Request(name string) tiling.PlanRequest {
	return tiling.PlanRequest{Name: name, Workload: inst.Workload, Fields: inst.Fields}
}

// Result pairs inst with the plan built for it.
func (inst Instance) Result(plan tiling.TilingPlan) Result {
	return Result{
		Op:       inst.Op.Name(),
		Output:   inst.Output,
		DType:    inst.DType,
		Workload: inst.Workload,
		Plan:     plan,
		Variant:  VariantName(inst.Op.Name(), plan.TilingKey),
		FillBits: inst.FillBits,
	}
}

// Tile prepares op on in and builds its tiling plan for hw.
func Tile(op Op, hw tiling.HardwareProfile, in []Shape, dt DType, opts Options) (Result, error) {
	inst, err := prepare(op, in, dt, opts)
	if err != nil {
		return Result{}, errors.WithMessagef(err, "%s", op.Name())
	}
	plan, err := tiling.BuildPlan(hw, inst.Workload, inst.Fields)
	if err != nil {
		return Result{}, errors.WithMessagef(err, "%s", op.Name())
	}
	return inst.Result(plan), nil
}

// VariantName returns the kernel variant symbol for an operator and tiling
// key, e.g. VariantName("reduce_sum", 1020) is "ReduceSumTiling_1020".
func VariantName(op string, key uint64) string {
	// Casers are stateful and must not be shared between goroutines.
	title := cases.Title(language.English).String(strings.ReplaceAll(op, "_", " "))
	return fmt.Sprintf("%sTiling_%d", strings.ReplaceAll(title, " ", ""), key)
}

// innerDimOf returns the row length of s for row-structured workloads, or 0
// (no row structure) for scalars and empty rows.
func innerDimOf(s Shape) uint64 {
	if len(s) == 0 || s.InnerDim() <= 0 {
		return 0
	}
	return uint64(s.InnerDim())
}
