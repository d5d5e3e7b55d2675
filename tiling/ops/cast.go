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

import "github.com/ajroetker/go-tiling/tiling"

// castOp converts to Options.CastTo. Tiles are sized by the wider of the two
// element types so both the source and destination buffers fit.
type castOp struct{}

func (castOp) Name() string                  { return "cast" }
func (castOp) Schedule() tiling.ScheduleMode { return tiling.ScheduleCast }
func (castOp) NumInputs() int                { return 1 }

func (castOp) InferShape(in []Shape, _ Options) (Shape, error) {
	return in[0].Clone(), nil
}

func (castOp) InferDType(_ DType, opts Options) (DType, error) {
	if !opts.CastTo.IsValid() {
		return InvalidDType, &tiling.ConfigError{Field: "dtype", Reason: "cast needs a destination dtype"}
	}
	return opts.CastTo, nil
}

func (castOp) Workload(_ []Shape, out Shape, dt DType, opts Options) (tiling.WorkloadDescriptor, error) {
	n, err := out.NumElements()
	if err != nil {
		return tiling.WorkloadDescriptor{}, err
	}
	return tiling.WorkloadDescriptor{
		TotalElements:        n,
		ElementBytes:         max(dt.Size(), opts.CastTo.Size()),
		TempBufferMultiplier: 2,
		BufferingFactor:      opts.bufferingFactor(),
	}, nil
}
