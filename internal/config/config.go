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

// Package config loads hardware profiles and planning batches from YAML.
//
// A profile file names a preset, overrides some of its fields, or both:
//
//	preset: npu-a2
//	buffer_bytes: 131072
//
// A batch file carries an optional profile and a list of requests:
//
//	profile:
//	  name: lab-board
//	  cores: 8
//	  buffer_bytes: 65536
//	  alignment_bytes: 32
//	requests:
//	  - op: reduce_sum
//	    dtype: float16
//	    shapes: ["32,4096"]
//	    keepdims: true
package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-tiling/tiling"
	"github.com/ajroetker/go-tiling/tiling/ops"
)

// Profile is the YAML form of a hardware profile. Zero fields keep the
// preset's value.
type Profile struct {
	Preset         string `yaml:"preset,omitempty"`
	Name           string `yaml:"name,omitempty"`
	Cores          uint32 `yaml:"cores,omitempty"`
	BufferBytes    uint64 `yaml:"buffer_bytes,omitempty"`
	AlignmentBytes uint32 `yaml:"alignment_bytes,omitempty"`
}

// Resolve merges p onto its preset and validates the result.
func (p Profile) Resolve() (tiling.HardwareProfile, error) {
	var hw tiling.HardwareProfile
	if p.Preset != "" {
		var err error
		if hw, err = tiling.LookupPreset(p.Preset); err != nil {
			return tiling.HardwareProfile{}, err
		}
	}
	if p.Name != "" {
		hw.Name = p.Name
	}
	if p.Cores != 0 {
		hw.CoreCount = p.Cores
	}
	if p.BufferBytes != 0 {
		hw.BufferBytes = p.BufferBytes
	}
	if p.AlignmentBytes != 0 {
		hw.AlignmentBytes = p.AlignmentBytes
	}
	if err := hw.Validate(); err != nil {
		return tiling.HardwareProfile{}, err
	}
	return hw, nil
}

// Request is the YAML form of one operator instance.
type Request struct {
	Name         string   `yaml:"name,omitempty"`
	Op           string   `yaml:"op"`
	DType        string   `yaml:"dtype"`
	Shapes       []string `yaml:"shapes"`
	DoubleBuffer bool     `yaml:"double_buffer,omitempty"`
	KeepDims     bool     `yaml:"keepdims,omitempty"`
	Perm         []int    `yaml:"perm,omitempty"`
	Pads         []int64  `yaml:"pads,omitempty"`
	PadValue     float64  `yaml:"pad_value,omitempty"`
	Target       string   `yaml:"target,omitempty"`
	CastTo       string   `yaml:"cast_to,omitempty"`
}

// Label names r in messages: its name if set, else its operator.
func (r Request) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Op
}

// Prepare resolves r against the built-in operators.
func (r Request) Prepare() (ops.Instance, error) {
	op, err := ops.Lookup(r.Op)
	if err != nil {
		return ops.Instance{}, err
	}
	dt, err := ops.ParseDType(r.DType)
	if err != nil {
		return ops.Instance{}, err
	}
	in := make([]ops.Shape, len(r.Shapes))
	for i, text := range r.Shapes {
		if in[i], err = ops.ParseShape(text); err != nil {
			return ops.Instance{}, err
		}
	}
	opts := ops.Options{
		DoubleBuffer: r.DoubleBuffer,
		KeepDims:     r.KeepDims,
		Perm:         r.Perm,
		Pads:         r.Pads,
		PadValue:     r.PadValue,
	}
	if r.Target != "" {
		if opts.Target, err = ops.ParseShape(r.Target); err != nil {
			return ops.Instance{}, err
		}
	}
	if r.CastTo != "" {
		if opts.CastTo, err = ops.ParseDType(r.CastTo); err != nil {
			return ops.Instance{}, err
		}
	}
	return ops.Prepare(op, in, dt, opts)
}

// Batch is a list of requests planned against one profile.
type Batch struct {
	Profile  *Profile  `yaml:"profile,omitempty"`
	Requests []Request `yaml:"requests"`
}

// LoadProfile reads a Profile from path and resolves it.
func LoadProfile(path string) (tiling.HardwareProfile, error) {
	var p Profile
	if err := decodeFile(path, &p); err != nil {
		return tiling.HardwareProfile{}, err
	}
	hw, err := p.Resolve()
	if err != nil {
		return tiling.HardwareProfile{}, errors.WithMessagef(err, "profile %s", path)
	}
	return hw, nil
}

// LoadBatch reads a Batch from path.
func LoadBatch(path string) (*Batch, error) {
	var b Batch
	if err := decodeFile(path, &b); err != nil {
		return nil, err
	}
	if len(b.Requests) == 0 {
		return nil, errors.Errorf("batch %s has no requests", path)
	}
	return &b, nil
}

// ParseBatch decodes a Batch from YAML text.
func ParseBatch(data []byte) (*Batch, error) {
	var b Batch
	if err := decode(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	return errors.WithMessagef(decode(data, v), "parse %s", path)
}

// decode rejects unknown keys so misspelled fields are not silently ignored.
func decode(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "yaml")
	}
	return nil
}
