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
	"strings"
)

// ScheduleMode selects the kernel loop structure an operator compiles to.
type ScheduleMode uint32

const (
	// ScheduleElementwise is a flat loop over same-shaped operands.
	ScheduleElementwise ScheduleMode = iota

	// ScheduleBroadcast expands lower-rank or size-1 operands while copying in.
	ScheduleBroadcast

	// ScheduleReduce processes whole rows and reduces along the last axis.
	ScheduleReduce

	// ScheduleTranspose permutes axes while moving rows through the buffer.
	ScheduleTranspose

	// SchedulePad writes padded rows around the copied input.
	SchedulePad

	// ScheduleCast converts between element types.
	ScheduleCast
)

// String returns a human-readable name for the schedule.
func (s ScheduleMode) String() string {
	switch s {
	case ScheduleElementwise:
		return "elementwise"
	case ScheduleBroadcast:
		return "broadcast"
	case ScheduleReduce:
		return "reduce"
	case ScheduleTranspose:
		return "transpose"
	case SchedulePad:
		return "pad"
	case ScheduleCast:
		return "cast"
	default:
		return "unknown"
	}
}

// DTypeClass groups element types that share a compiled kernel template.
type DTypeClass uint32

const (
	DTypeClassFloat32 DTypeClass = iota
	DTypeClassFloat16
	DTypeClassBFloat16
	DTypeClassInt
	DTypeClassFloat64
	DTypeClassByte
)

// String returns a human-readable name for the class.
func (c DTypeClass) String() string {
	switch c {
	case DTypeClassFloat32:
		return "fp32"
	case DTypeClassFloat16:
		return "fp16"
	case DTypeClassBFloat16:
		return "bf16"
	case DTypeClassInt:
		return "int"
	case DTypeClassFloat64:
		return "fp64"
	case DTypeClassByte:
		return "byte"
	default:
		return "unknown"
	}
}

// EncodeKey folds axis values into a single dispatch integer:
//
//	key = axes[0]*bases[0] + axes[1]*bases[1] + ...
//
// Each base must exceed the largest value the lower axes can contribute,
// otherwise distinct axis tuples collide. EncodeKey cannot detect that; use
// KeySchema when the axis cardinalities are known.
//
// Returns *EncodingOverflowError when the lengths differ or the arithmetic
// overflows 64 bits.
func EncodeKey(axes []uint32, bases []uint64) (uint64, error) {
	if len(axes) != len(bases) {
		return 0, &EncodingOverflowError{Axis: -1, Reason: fmt.Sprintf("%d axis values for %d bases", len(axes), len(bases))}
	}
	var key uint64
	for i := range axes {
		hi, term := bits.Mul64(uint64(axes[i]), bases[i])
		if hi != 0 {
			return 0, &EncodingOverflowError{Axis: i, Reason: fmt.Sprintf("%d * %d overflows", axes[i], bases[i])}
		}
		var carry uint64
		key, carry = bits.Add64(key, term, 0)
		if carry != 0 {
			return 0, &EncodingOverflowError{Axis: i, Reason: "sum overflows"}
		}
	}
	return key, nil
}

// KeyAxis is one named component of a tiling key.
type KeyAxis struct {
	Name        string
	Base        uint64
	Cardinality uint32 // Number of distinct values; valid values are [0, Cardinality)
}

// KeySchema is an ordered list of key axes, least significant first.
type KeySchema []KeyAxis

// DefaultKeySchema packs the four standard axes into decimal digits:
// units = dtype class, tens = schedule, hundreds = has-big-core,
// thousands = double buffering.
var DefaultKeySchema = KeySchema{
	{Name: "dtype", Base: 1, Cardinality: 10},
	{Name: "schedule", Base: 10, Cardinality: 10},
	{Name: "bigcore", Base: 100, Cardinality: 2},
	{Name: "buffering", Base: 1000, Cardinality: 2},
}

// Validate checks that every axis base exceeds the largest value the lower
// axes can encode, so distinct tuples never collide, and that the largest
// key fits in 64 bits.
func (s KeySchema) Validate() error {
	if len(s) == 0 {
		return configErrorf("KeySchema", "no axes")
	}
	var maxBelow uint64
	for i, ax := range s {
		if ax.Cardinality == 0 {
			return configErrorf("KeySchema", "axis %q has zero cardinality", ax.Name)
		}
		if ax.Base == 0 {
			return configErrorf("KeySchema", "axis %q has zero base", ax.Name)
		}
		if i > 0 && ax.Base <= maxBelow {
			return configErrorf("KeySchema", "axis %q base %d does not exceed %d reachable by lower axes", ax.Name, ax.Base, maxBelow)
		}
		hi, top := bits.Mul64(uint64(ax.Cardinality-1), ax.Base)
		if hi != 0 {
			return configErrorf("KeySchema", "axis %q overflows 64 bits", ax.Name)
		}
		var carry uint64
		maxBelow, carry = bits.Add64(maxBelow, top, 0)
		if carry != 0 {
			return configErrorf("KeySchema", "axis %q overflows 64 bits", ax.Name)
		}
	}
	return nil
}

// Bases returns the axis bases in order.
func (s KeySchema) Bases() []uint64 {
	bases := make([]uint64, len(s))
	for i, ax := range s {
		bases[i] = ax.Base
	}
	return bases
}

// Encode checks each value against its axis cardinality and folds them with
// EncodeKey.
func (s KeySchema) Encode(values ...uint32) (uint64, error) {
	if len(values) != len(s) {
		return 0, &EncodingOverflowError{Axis: -1, Reason: fmt.Sprintf("%d values for %d axes", len(values), len(s))}
	}
	for i, v := range values {
		if v >= s[i].Cardinality {
			return 0, &EncodingOverflowError{Axis: i, Reason: fmt.Sprintf("%s value %d out of range [0, %d)", s[i].Name, v, s[i].Cardinality)}
		}
	}
	return EncodeKey(values, s.Bases())
}

// Decode recovers the axis values of a key produced by Encode. The schema
// must be valid.
func (s KeySchema) Decode(key uint64) ([]uint32, error) {
	values := make([]uint32, len(s))
	rem := key
	for i := len(s) - 1; i >= 0; i-- {
		v := rem / s[i].Base
		if v >= uint64(s[i].Cardinality) {
			return nil, &EncodingOverflowError{Axis: i, Reason: fmt.Sprintf("key %d has %s value %d out of range", key, s[i].Name, v)}
		}
		values[i] = uint32(v)
		rem -= v * s[i].Base
	}
	if rem != 0 {
		return nil, &EncodingOverflowError{Axis: 0, Reason: fmt.Sprintf("key %d leaves remainder %d", key, rem)}
	}
	return values, nil
}

// Describe renders a key as "name=value" pairs, most significant axis first.
func (s KeySchema) Describe(key uint64) (string, error) {
	values, err := s.Decode(key)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		parts = append(parts, fmt.Sprintf("%s=%d", s[i].Name, values[i]))
	}
	return strings.Join(parts, " "), nil
}

// KeyFields are the operator-supplied axes of the default key. The big-core
// and buffering axes are derived from the plan itself.
type KeyFields struct {
	DTypeClass DTypeClass
	Schedule   ScheduleMode
}
