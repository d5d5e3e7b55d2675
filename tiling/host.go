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

package tiling

import (
	"os"
	"runtime"
	"strconv"
)

// hostBufferBytes is the per-core budget assumed for the host: a 32 KiB L1d.
const hostBufferBytes = 32 << 10

// hostVectorWidth is the widest vector register, in bytes, detected on the
// host. It doubles as the host's alignment granularity.
// Set by init() in host_*.go files.
var hostVectorWidth uint32

// hostTarget is the human-readable name of the detected vector extension.
// Set by init() in host_*.go files.
var hostTarget string

// HostProfile returns a profile describing the machine the planner runs on:
// one core per logical CPU, an L1d-sized buffer and the vector width as the
// alignment.
func HostProfile() HardwareProfile {
	return HardwareProfile{
		Name:           "host",
		CoreCount:      uint32(max(runtime.NumCPU(), 1)),
		BufferBytes:    hostBufferBytes,
		AlignmentBytes: hostVectorWidth,
	}
}

// HostTarget returns the name of the vector extension used to pick the host
// alignment, e.g. "avx512", "avx2", "neon" or "scalar".
func HostTarget() string {
	return hostTarget
}

// NoProbeEnv checks if the TILING_NO_PROBE environment variable is set.
// When set, the host profile ignores CPU features and uses 16-byte alignment,
// which keeps plans reproducible across machines.
func NoProbeEnv() bool {
	val := os.Getenv("TILING_NO_PROBE")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarHost() {
	hostVectorWidth = 16
	hostTarget = "scalar"
}
