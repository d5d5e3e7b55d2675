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
	"flag"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-tiling/internal/config"
	"github.com/ajroetker/go-tiling/tiling"
)

// app holds the persistent flags shared by every subcommand.
type app struct {
	profile     string
	profileSet  bool // --profile given explicitly
	profileFile string
	cores       uint32
	buffer      uint64
	align       uint32
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tilegen",
		Short:         "Build multi-core tiling plans for tensor operators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.profileSet = cmd.Flags().Changed("profile")
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.profile, "profile", "npu-a2", "hardware preset (see 'tilegen profiles'); outranks a batch file's profile when set")
	pf.StringVar(&a.profileFile, "profile-file", "", "YAML hardware profile; replaces --profile")
	pf.Uint32Var(&a.cores, "cores", 0, "override the core count")
	pf.Uint64Var(&a.buffer, "buffer", 0, "override the per-core buffer size in bytes")
	pf.Uint32Var(&a.align, "align", 0, "override the alignment in bytes")

	bindKlogFlags(pf)

	root.AddCommand(
		newPlanCmd(a),
		newBatchCmd(a),
		newInspectCmd(),
		newDecodeKeyCmd(),
		newOpsCmd(),
		newProfilesCmd(),
	)
	return root
}

// bindKlogFlags exposes klog's -v, -logtostderr, ... on fs.
func bindKlogFlags(fs *pflag.FlagSet) {
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)
}

// hardware resolves the profile: --profile-file, else an explicit --profile,
// else base (a batch file's profile), else the default preset, then the
// single-field overrides.
func (a *app) hardware(base *config.Profile) (tiling.HardwareProfile, error) {
	var (
		hw  tiling.HardwareProfile
		err error
	)
	switch {
	case a.profileFile != "":
		hw, err = config.LoadProfile(a.profileFile)
	case base != nil && !a.profileSet:
		hw, err = base.Resolve()
	default:
		hw, err = tiling.LookupPreset(a.profile)
	}
	if err != nil {
		return tiling.HardwareProfile{}, err
	}

	if a.cores != 0 {
		hw.CoreCount = a.cores
	}
	if a.buffer != 0 {
		hw.BufferBytes = a.buffer
	}
	if a.align != 0 {
		hw.AlignmentBytes = a.align
	}
	if err := hw.Validate(); err != nil {
		return tiling.HardwareProfile{}, err
	}
	klog.V(1).InfoS("using hardware profile", "profile", hw.String())
	return hw, nil
}
