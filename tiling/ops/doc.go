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

// Package ops adapts tensor operators to the generic tiling planner.
//
// Each operator infers its output shape and dtype and describes the data its
// kernel streams through the on-chip buffer as a [tiling.WorkloadDescriptor].
// [Tile] then builds the plan and names the kernel variant its tiling key
// selects:
//
//	op, _ := ops.Lookup("reduce_sum")
//	res, err := ops.Tile(op, tiling.ProfileNPUA2(), []ops.Shape{{8, 1000}}, ops.Float32, ops.Options{})
//	// res.Variant == "ReduceSumTiling_..."
//
// Reductions, transposes and pads are row-structured: their tiles never split
// an innermost row. Elementwise, broadcast and cast operators are flat.
package ops
