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

// Package main prints the CPU features behind the "host" tiling profile.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-tiling/tiling"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	hw := tiling.HostProfile()
	fmt.Printf("Host target: %s\n", tiling.HostTarget())
	fmt.Printf("Host profile: %s\n", hw)
	fmt.Printf("Probe disabled (TILING_NO_PROBE): %v\n", tiling.NoProbeEnv())
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:   %v (selects 16-byte alignment)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasASIMDHP: %v (fp16 vectors)\n", cpu.ARM64.HasASIMDHP)
	fmt.Printf("  HasSVE:     %v\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:    %v\n", cpu.ARM64.HasSVE2)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasAVX512F: %v (selects 64-byte alignment)\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX2:    %v (selects 32-byte alignment)\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasSSE2:    %v (selects 16-byte alignment)\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasFMA:     %v\n", cpu.X86.HasFMA)
}
