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
	"errors"
	"math/bits"
	"runtime"
	"slices"
	"testing"
)

func TestNewHardwareProfile(t *testing.T) {
	tests := []struct {
		name    string
		cores   uint32
		buffer  uint64
		align   uint32
		wantErr bool
	}{
		{"Valid", 40, 196608, 32, false},
		{"ZeroCores", 0, 196608, 32, true},
		{"ZeroBuffer", 40, 0, 32, true},
		{"ZeroAlignment", 40, 196608, 0, true},
		{"NonPowerOfTwo", 40, 196608, 48, true},
		{"OneByteAlignment", 1, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hw, err := NewHardwareProfile("test", tt.cores, tt.buffer, tt.align)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewHardwareProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrConfig) {
					t.Errorf("NewHardwareProfile() error = %v, want ErrConfig", err)
				}
				return
			}
			if hw.CoreCount != tt.cores || hw.BufferBytes != tt.buffer || hw.AlignmentBytes != tt.align {
				t.Errorf("NewHardwareProfile() = %v", hw)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	names := PresetNames()
	want := []string{"host", "npu-a1", "npu-a2", "npu-lite"}
	if !slices.Equal(names, want) {
		t.Errorf("PresetNames() = %v, want %v", names, want)
	}
	for _, name := range names {
		hw, err := LookupPreset(name)
		if err != nil {
			t.Fatalf("LookupPreset(%q) error = %v", name, err)
		}
		if err := hw.Validate(); err != nil {
			t.Errorf("preset %q is invalid: %v", name, err)
		}
		if hw.Name != name {
			t.Errorf("LookupPreset(%q).Name = %q", name, hw.Name)
		}
	}
	if _, err := LookupPreset("gpu"); !errors.Is(err, ErrConfig) {
		t.Errorf("LookupPreset(unknown) error = %v, want ErrConfig", err)
	}
}

func TestHostProfile(t *testing.T) {
	hw := HostProfile()
	if err := hw.Validate(); err != nil {
		t.Fatalf("HostProfile() invalid: %v", err)
	}
	if int(hw.CoreCount) != runtime.NumCPU() {
		t.Errorf("CoreCount = %d, want %d", hw.CoreCount, runtime.NumCPU())
	}
	if bits.OnesCount32(hw.AlignmentBytes) != 1 || hw.AlignmentBytes < 16 {
		t.Errorf("AlignmentBytes = %d, want a power of two >= 16", hw.AlignmentBytes)
	}
	switch HostTarget() {
	case "scalar", "sse2", "neon":
		if hw.AlignmentBytes != 16 {
			t.Errorf("%s host has alignment %d, want 16", HostTarget(), hw.AlignmentBytes)
		}
	case "avx2":
		if hw.AlignmentBytes != 32 {
			t.Errorf("avx2 host has alignment %d, want 32", hw.AlignmentBytes)
		}
	case "avx512":
		if hw.AlignmentBytes != 64 {
			t.Errorf("avx512 host has alignment %d, want 64", hw.AlignmentBytes)
		}
	default:
		t.Errorf("HostTarget() = %q", HostTarget())
	}
}

func TestNoProbeEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"0", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("TILING_NO_PROBE", tt.val)
		if got := NoProbeEnv(); got != tt.want {
			t.Errorf("NoProbeEnv() with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestProfileString(t *testing.T) {
	got := ProfileNPUA2().String()
	want := "npu-a2(cores=40, buffer=196608B, align=32B)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (HardwareProfile{CoreCount: 1, BufferBytes: 2, AlignmentBytes: 4}).String(); got != "custom(cores=1, buffer=2B, align=4B)" {
		t.Errorf("String() = %q", got)
	}
}
