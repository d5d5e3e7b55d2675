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
	"fmt"
	"math/bits"
	"sort"
)

// HardwareProfile describes the device limits a plan is computed against.
//
// A profile is queried once per run and passed by value; nothing in this
// package mutates it.
type HardwareProfile struct {
	Name           string // Informational: preset name or "host"
	CoreCount      uint32 // Parallel compute cores
	BufferBytes    uint64 // Usable scratch buffer per core
	AlignmentBytes uint32 // DMA block size, a power of two
}

// NewHardwareProfile returns a validated profile.
func NewHardwareProfile(name string, cores uint32, bufferBytes uint64, alignmentBytes uint32) (HardwareProfile, error) {
	hw := HardwareProfile{
		Name:           name,
		CoreCount:      cores,
		BufferBytes:    bufferBytes,
		AlignmentBytes: alignmentBytes,
	}
	if err := hw.Validate(); err != nil {
		return HardwareProfile{}, err
	}
	return hw, nil
}

// Validate checks the profile and returns a *ConfigError for the first
// problem found.
func (hw HardwareProfile) Validate() error {
	switch {
	case hw.CoreCount == 0:
		return configErrorf("CoreCount", "must be positive")
	case hw.AlignmentBytes == 0:
		return configErrorf("AlignmentBytes", "must be positive")
	case bits.OnesCount32(hw.AlignmentBytes) != 1:
		return configErrorf("AlignmentBytes", "%d is not a power of two", hw.AlignmentBytes)
	case hw.BufferBytes == 0:
		return configErrorf("BufferBytes", "must be positive")
	}
	return nil
}

// String returns a compact one-line description.
func (hw HardwareProfile) String() string {
	name := hw.Name
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s(cores=%d, buffer=%dB, align=%dB)", name, hw.CoreCount, hw.BufferBytes, hw.AlignmentBytes)
}

// Device presets. The numbers are the usable unified-buffer budget per core
// after the runtime reserves its own scratch, not the raw SRAM size.

// ProfileNPUA2 returns the 40-core training part.
func ProfileNPUA2() HardwareProfile {
	return HardwareProfile{
		Name:           "npu-a2",
		CoreCount:      40,
		BufferBytes:    196608, // 192 KiB
		AlignmentBytes: 32,
	}
}

// ProfileNPUA1 returns the 32-core first-generation part.
func ProfileNPUA1() HardwareProfile {
	return HardwareProfile{
		Name:           "npu-a1",
		CoreCount:      32,
		BufferBytes:    253952, // 248 KiB
		AlignmentBytes: 32,
	}
}

// ProfileNPULite returns the 8-core inference part.
func ProfileNPULite() HardwareProfile {
	return HardwareProfile{
		Name:           "npu-lite",
		CoreCount:      8,
		BufferBytes:    131072, // 128 KiB
		AlignmentBytes: 32,
	}
}

// presets maps preset names to constructors. "host" is probed lazily since
// it depends on the running machine.
var presets = map[string]func() HardwareProfile{
	"npu-a2":   ProfileNPUA2,
	"npu-a1":   ProfileNPUA1,
	"npu-lite": ProfileNPULite,
	"host":     HostProfile,
}

// PresetNames returns the sorted names accepted by LookupPreset.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the named device profile.
func LookupPreset(name string) (HardwareProfile, error) {
	fn, ok := presets[name]
	if !ok {
		return HardwareProfile{}, configErrorf("profile", "unknown preset %q", name)
	}
	return fn(), nil
}
