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
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-tiling/internal/config"
	"github.com/ajroetker/go-tiling/tiling"
	"github.com/ajroetker/go-tiling/tiling/ops"
)

// batchJSON is the JSON output of the batch command.
type batchJSON struct {
	Run     string     `json:"run"`
	Profile string     `json:"profile"`
	Plans   []planJSON `json:"plans"`
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		file   string
		jobs   int
		format string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Plan every request of a YAML batch file concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return errors.Errorf("unknown format %q (want text or json)", format)
			}
			b, err := config.LoadBatch(file)
			if err != nil {
				return err
			}
			hw, err := a.hardware(b.Profile)
			if err != nil {
				return err
			}

			insts := make([]ops.Instance, len(b.Requests))
			reqs := make([]tiling.PlanRequest, len(b.Requests))
			for i, r := range b.Requests {
				if insts[i], err = r.Prepare(); err != nil {
					return errors.WithMessagef(err, "request %d (%s)", i, r.Label())
				}
				reqs[i] = insts[i].Request(r.Label())
			}

			run := uuid.NewString()
			klog.V(1).InfoS("planning batch", "run", run, "file", file, "requests", len(reqs), "jobs", jobs)
			plans, err := tiling.PlanBatch(cmd.Context(), hw, reqs, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				doc := batchJSON{Run: run, Profile: hw.String(), Plans: make([]planJSON, len(plans))}
				for i, plan := range plans {
					doc.Plans[i] = newPlanJSON(b.Requests[i].Name, insts[i].Result(plan))
				}
				return writeJSON(out, doc)
			}
			for i, plan := range plans {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := writeText(out, hw, b.Requests[i].Label(), insts[i].Result(plan)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML batch file")
	f.IntVarP(&jobs, "jobs", "j", 0, "requests planned at once (default GOMAXPROCS)")
	f.StringVar(&format, "format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
