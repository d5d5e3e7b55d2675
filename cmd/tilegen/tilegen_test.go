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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-tiling/tiling"
	"github.com/ajroetker/go-tiling/tiling/ops"
	"github.com/ajroetker/go-tiling/tiling/tilingdata"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestOpsAndProfiles(t *testing.T) {
	out, err := run(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "SCHEDULE")
	assert.Contains(t, out, "reduce_sum")
	assert.Contains(t, out, "transpose")
	assert.Equal(t, len(ops.Names())+1, strings.Count(out, "\n"))

	out, err = run(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "npu-a2(cores=40, buffer=196608B, align=32B)")
	assert.Contains(t, out, "npu-lite(")
}

func TestDecodeKey(t *testing.T) {
	out, err := run(t, "decode-key", "1120")
	require.NoError(t, err)
	assert.Equal(t, "buffering=1 bigcore=1 schedule=2 dtype=0\n", out)

	_, err = run(t, "decode-key", "2000")
	assert.ErrorIs(t, err, tiling.ErrEncodingOverflow)

	_, err = run(t, "decode-key", "abc")
	assert.Error(t, err)
}

func TestPlanJSON(t *testing.T) {
	out, err := run(t, "plan", "--op", "reduce_sum", "--shape", "8,1000", "--keepdims", "--format", "json")
	require.NoError(t, err)

	var got planJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "reduce_sum", got.Op)
	assert.Equal(t, ops.Shape{8, 1}, got.Output)
	assert.Equal(t, uint32(40), got.UsedCores)
	assert.Equal(t, uint64(24000), got.Small.TileElementCount)
	assert.Equal(t, uint64(20), got.Key)
	assert.Equal(t, "buffering=0 bigcore=0 schedule=2 dtype=0", got.Axes)
	assert.Equal(t, "ReduceSumTiling_20", got.Variant)
	assert.Nil(t, got.FillBits)
}

func TestPlanOverrides(t *testing.T) {
	out, err := run(t, "plan", "--cores", "8", "--op", "add", "--shape", "8,1000", "--shape", "8,1000", "--format", "json")
	require.NoError(t, err)
	var got planJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint32(8), got.UsedCores)
	assert.Equal(t, uint64(1000), got.Small.ElementsPerCore)
	assert.Equal(t, uint64(0), got.Key)

	profile := writeTemp(t, "hw.yaml", "preset: npu-lite\ncores: 4\n")
	out, err = run(t, "plan", "--profile-file", profile, "--op", "relu", "--shape", "4096", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint32(4), got.UsedCores)
	assert.Equal(t, uint64(1024), got.Small.ElementsPerCore)
}

func TestPlanText(t *testing.T) {
	out, err := run(t, "plan", "--op", "pad", "--shape", "2,3", "--pads", "0,0,1,1", "--pad-value", "-1", "--dtype", "int8")
	require.NoError(t, err)
	assert.Contains(t, out, "PadTiling_43")
	assert.Contains(t, out, "[2,5] int8")
	assert.Contains(t, out, "0xff")
	assert.NotContains(t, out, "big:")
}

func TestPlanBinaryAndInspect(t *testing.T) {
	out, err := run(t, "plan", "--op", "add", "--shape", "8,1000", "--shape", "8,1000", "--format", "bin")
	require.NoError(t, err)
	require.Len(t, out, tilingdata.Size)

	plan, err := tilingdata.Decode([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, uint32(40), plan.UsedCoreCount)

	path := writeTemp(t, "add.tld", out)
	text, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, text, "40 used, 0 big")
	assert.Contains(t, text, "(buffering=0 bigcore=0 schedule=0 dtype=0)")

	_, err = run(t, "inspect", writeTemp(t, "bad.tld", "TLD1"))
	assert.ErrorIs(t, err, tilingdata.ErrMalformed)
}

const batchFile = `
profile:
  name: lab
  cores: 8
  buffer_bytes: 65536
  alignment_bytes: 32
requests:
  - name: norm
    op: reduce_sum
    dtype: float16
    shapes: ["32,4096"]
    keepdims: true
  - op: add
    dtype: float32
    shapes: ["1000", "1000"]
    double_buffer: true
`

func TestBatch(t *testing.T) {
	path := writeTemp(t, "batch.yaml", batchFile)

	out, err := run(t, "batch", "--file", path, "--jobs", "2", "--format", "json")
	require.NoError(t, err)
	var got batchJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.Run)
	assert.True(t, strings.HasPrefix(got.Profile, "lab("), got.Profile)
	require.Len(t, got.Plans, 2)

	assert.Equal(t, "norm", got.Plans[0].Name)
	assert.Equal(t, uint32(8), got.Plans[0].UsedCores)
	assert.Equal(t, uint64(16384), got.Plans[0].Small.ElementsPerCore)
	assert.Equal(t, "ReduceSumTiling_21", got.Plans[0].Variant)

	assert.Equal(t, "add", got.Plans[1].Op)
	assert.Equal(t, uint64(1100), got.Plans[1].Key)

	out, err = run(t, "batch", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "norm")
	assert.Contains(t, out, "ReduceSumTiling_21")
	assert.Contains(t, out, "AddTiling_1100")
}

func TestBatchExplicitProfileOutranksFile(t *testing.T) {
	path := writeTemp(t, "batch.yaml", batchFile)

	out, err := run(t, "batch", "--file", path, "--profile", "npu-a1", "--format", "json")
	require.NoError(t, err)
	var got batchJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, strings.HasPrefix(got.Profile, "npu-a1("), got.Profile)
	require.Len(t, got.Plans, 2)

	// 32 cores split 8192 f16 blocks evenly; tiles hold whole 4096-element rows.
	assert.Equal(t, uint32(32), got.Plans[0].UsedCores)
	assert.Equal(t, uint64(4096), got.Plans[0].Small.ElementsPerCore)
	assert.Equal(t, uint64(61440), got.Plans[0].Small.TileElementCount)
	assert.Equal(t, "ReduceSumTiling_21", got.Plans[0].Variant)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"unknown op", []string{"plan", "--op", "conv", "--shape", "4"}, tiling.ErrConfig},
		{"bad shape", []string{"plan", "--op", "abs", "--shape", "4,x"}, tiling.ErrConfig},
		{"unknown preset", []string{"plan", "--profile", "npu-z9", "--op", "abs", "--shape", "4"}, tiling.ErrConfig},
		{"bad alignment", []string{"plan", "--align", "24", "--op", "abs", "--shape", "4"}, tiling.ErrConfig},
		{"tiny buffer", []string{"plan", "--buffer", "16", "--op", "abs", "--shape", "4"}, tiling.ErrInsufficientBuffer},
		{"missing op", []string{"plan", "--shape", "4"}, nil},
		{"bad format", []string{"plan", "--op", "abs", "--shape", "4", "--format", "xml"}, nil},
		{"batch format", []string{"batch", "--file", "x.yaml", "--format", "bin"}, nil},
		{"missing batch", []string{"batch", "--file", filepath.Join(t.TempDir(), "none.yaml")}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}
