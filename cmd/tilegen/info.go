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
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-tiling/tiling"
	"github.com/ajroetker/go-tiling/tiling/ops"
	"github.com/ajroetker/go-tiling/tiling/tilingdata"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the supported operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OP\tINPUTS\tSCHEDULE")
			for _, op := range lo.Map(ops.Names(), func(name string, _ int) ops.Op {
				op, _ := ops.Lookup(name)
				return op
			}) {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", op.Name(), op.NumInputs(), op.Schedule())
			}
			return tw.Flush()
		},
	}
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the hardware presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range tiling.PresetNames() {
				hw, err := tiling.LookupPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hw)
			}
			return nil
		},
	}
}

func newDecodeKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode-key KEY",
		Short: "Split a tiling key into its axes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "bad key %q", args[0])
			}
			desc, err := tiling.DefaultKeySchema.Describe(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), desc)
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print a binary tiling record written by 'plan --format bin'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read record")
			}
			plan, err := tilingdata.Decode(data)
			if err != nil {
				return err
			}
			return writeRecord(cmd.OutOrStdout(), plan)
		},
	}
}
