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
	"math"
	"slices"
	"testing"
)

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name  string
		axes  []uint32
		bases []uint64
		want  uint64
	}{
		{"Empty", nil, nil, 0},
		{"Decimal", []uint32{1, 2, 1, 1}, []uint64{1, 10, 100, 1000}, 1121},
		{"ZeroAxes", []uint32{0, 0, 0}, []uint64{1, 10, 100}, 0},
		{"Binary", []uint32{1, 0, 1}, []uint64{1, 2, 4}, 5},
		{"LargeBase", []uint32{3}, []uint64{1 << 40}, 3 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeKey(tt.axes, tt.bases)
			if err != nil {
				t.Fatalf("EncodeKey() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EncodeKey(%v, %v) = %d, want %d", tt.axes, tt.bases, got, tt.want)
			}
		})
	}
}

func TestEncodeKeyErrors(t *testing.T) {
	tests := []struct {
		name     string
		axes     []uint32
		bases    []uint64
		wantAxis int
	}{
		{"LengthMismatch", []uint32{1, 2}, []uint64{1}, -1},
		{"ProductOverflow", []uint32{2}, []uint64{math.MaxUint64}, 0},
		{"SumOverflow", []uint32{1, 1}, []uint64{math.MaxUint64, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeKey(tt.axes, tt.bases)
			if !errors.Is(err, ErrEncodingOverflow) {
				t.Fatalf("EncodeKey() error = %v, want ErrEncodingOverflow", err)
			}
			var encErr *EncodingOverflowError
			if !errors.As(err, &encErr) {
				t.Fatalf("EncodeKey() error %T is not *EncodingOverflowError", err)
			}
			if encErr.Axis != tt.wantAxis {
				t.Errorf("EncodingOverflowError.Axis = %d, want %d", encErr.Axis, tt.wantAxis)
			}
		})
	}
}

func TestKeySchemaValidate(t *testing.T) {
	if err := DefaultKeySchema.Validate(); err != nil {
		t.Fatalf("DefaultKeySchema.Validate() = %v", err)
	}

	tests := []struct {
		name   string
		schema KeySchema
	}{
		{"Empty", KeySchema{}},
		{"ZeroCardinality", KeySchema{{Name: "a", Base: 1, Cardinality: 0}}},
		{"ZeroBase", KeySchema{{Name: "a", Base: 0, Cardinality: 2}}},
		{"Collision", KeySchema{{Name: "a", Base: 1, Cardinality: 10}, {Name: "b", Base: 5, Cardinality: 2}}},
		{"BaseEqualsReach", KeySchema{{Name: "a", Base: 1, Cardinality: 10}, {Name: "b", Base: 9, Cardinality: 2}}},
		{"Overflow", KeySchema{{Name: "a", Base: 1, Cardinality: 2}, {Name: "b", Base: math.MaxUint64, Cardinality: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.schema.Validate(); !errors.Is(err, ErrConfig) {
				t.Errorf("Validate() = %v, want ErrConfig", err)
			}
		})
	}
}

func TestKeySchemaRoundTrip(t *testing.T) {
	schema := DefaultKeySchema
	for dtype := range uint32(10) {
		for sched := range uint32(10) {
			for big := range uint32(2) {
				for buf := range uint32(2) {
					in := []uint32{dtype, sched, big, buf}
					key, err := schema.Encode(in...)
					if err != nil {
						t.Fatalf("Encode(%v) error = %v", in, err)
					}
					out, err := schema.Decode(key)
					if err != nil {
						t.Fatalf("Decode(%d) error = %v", key, err)
					}
					if !slices.Equal(in, out) {
						t.Errorf("Decode(Encode(%v)) = %v", in, out)
					}
				}
			}
		}
	}
}

func TestKeySchemaNonDecimal(t *testing.T) {
	// Tight mixed-radix packing: 3 x 5 x 2.
	schema := KeySchema{
		{Name: "a", Base: 1, Cardinality: 3},
		{Name: "b", Base: 3, Cardinality: 5},
		{Name: "c", Base: 15, Cardinality: 2},
	}
	if err := schema.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	seen := make(map[uint64]bool)
	for a := range uint32(3) {
		for b := range uint32(5) {
			for c := range uint32(2) {
				key, err := schema.Encode(a, b, c)
				if err != nil {
					t.Fatalf("Encode(%d, %d, %d) error = %v", a, b, c, err)
				}
				if seen[key] {
					t.Errorf("Encode(%d, %d, %d) = %d collides", a, b, c, key)
				}
				seen[key] = true
			}
		}
	}
	if len(seen) != 30 {
		t.Errorf("got %d distinct keys, want 30", len(seen))
	}
}

func TestKeySchemaEncodeErrors(t *testing.T) {
	if _, err := DefaultKeySchema.Encode(10, 0, 0, 0); !errors.Is(err, ErrEncodingOverflow) {
		t.Errorf("Encode(out of range) error = %v, want ErrEncodingOverflow", err)
	}
	if _, err := DefaultKeySchema.Encode(1, 2); !errors.Is(err, ErrEncodingOverflow) {
		t.Errorf("Encode(too few values) error = %v, want ErrEncodingOverflow", err)
	}
}

func TestKeySchemaDecodeErrors(t *testing.T) {
	if _, err := DefaultKeySchema.Decode(20000); !errors.Is(err, ErrEncodingOverflow) {
		t.Errorf("Decode(20000) error = %v, want ErrEncodingOverflow", err)
	}
	schema := KeySchema{{Name: "a", Base: 2, Cardinality: 3}}
	if _, err := schema.Decode(3); !errors.Is(err, ErrEncodingOverflow) {
		t.Errorf("Decode(3) with base 2 error = %v, want ErrEncodingOverflow", err)
	}
}

func TestKeySchemaDescribe(t *testing.T) {
	got, err := DefaultKeySchema.Describe(1121)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	want := "buffering=1 bigcore=1 schedule=2 dtype=1"
	if got != want {
		t.Errorf("Describe(1121) = %q, want %q", got, want)
	}
}

func TestScheduleModeString(t *testing.T) {
	tests := []struct {
		mode ScheduleMode
		want string
	}{
		{ScheduleElementwise, "elementwise"},
		{ScheduleBroadcast, "broadcast"},
		{ScheduleReduce, "reduce"},
		{ScheduleTranspose, "transpose"},
		{SchedulePad, "pad"},
		{ScheduleCast, "cast"},
		{ScheduleMode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("ScheduleMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
