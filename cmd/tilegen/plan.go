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

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-tiling/internal/config"
	"github.com/ajroetker/go-tiling/tiling"
	"github.com/ajroetker/go-tiling/tiling/tilingdata"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		req    config.Request
		format string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan one operator instance",
		Example: `  tilegen plan --op add --shape 8,1000 --shape 8,1000
  tilegen plan --op transpose --shape 64,32 --perm 1,0 --format json
  tilegen plan --op pad --shape 2,3 --pads 0,0,1,1 --pad-value -1 --dtype int8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hw, err := a.hardware(nil)
			if err != nil {
				return err
			}
			inst, err := req.Prepare()
			if err != nil {
				return err
			}
			plan, err := tiling.BuildPlan(hw, inst.Workload, inst.Fields)
			if err != nil {
				return errors.WithMessagef(err, "%s", req.Op)
			}
			res := inst.Result(plan)

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				return writeText(out, hw, req.Label(), res)
			case "json":
				return writeJSON(out, newPlanJSON(req.Name, res))
			case "bin":
				_, err := out.Write(tilingdata.Encode(res.Plan))
				return err
			}
			return errors.Errorf("unknown format %q (want text, json or bin)", format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Op, "op", "", "operator name (see 'tilegen ops')")
	f.StringArrayVar(&req.Shapes, "shape", nil, "input shape such as 8,1000; repeat once per input")
	f.StringVar(&req.DType, "dtype", "float32", "input element type")
	f.BoolVar(&req.DoubleBuffer, "double-buffer", false, "plan for double buffering")
	f.BoolVar(&req.KeepDims, "keepdims", false, "reduce: keep the reduced axis")
	f.IntSliceVar(&req.Perm, "perm", nil, "transpose: axis permutation (default reverses)")
	f.Int64SliceVar(&req.Pads, "pads", nil, "pad: before,after pairs per axis")
	f.Float64Var(&req.PadValue, "pad-value", 0, "pad: fill value")
	f.StringVar(&req.Target, "target", "", "broadcast_to: target shape")
	f.StringVar(&req.CastTo, "cast-to", "", "cast: destination dtype")
	f.StringVar(&req.Name, "name", "", "label for the output")
	f.StringVar(&format, "format", "text", "output format: text, json or bin")
	_ = cmd.MarkFlagRequired("op")
	return cmd
}
