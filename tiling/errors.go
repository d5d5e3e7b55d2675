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
	"fmt"
)

// Sentinel errors for use with errors.Is. Every concrete error type in this
// package matches exactly one of them.
var (
	ErrConfig             = errors.New("tiling: invalid configuration")
	ErrInsufficientBuffer = errors.New("tiling: insufficient buffer")
	ErrEncodingOverflow   = errors.New("tiling: tiling key encoding overflow")
	ErrInvariant          = errors.New("tiling: plan invariant violated")
)

// ConfigError reports an invalid hardware profile, workload or key schema.
// It is fatal for the operator being compiled.
type ConfigError struct {
	Field  string // Offending field, e.g. "CoreCount"
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tiling: invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InsufficientBufferError reports that the per-core buffer cannot hold a single
// aligned chunk once the buffering factor and temporary multiplier are applied.
type InsufficientBufferError struct {
	BufferBytes          uint64
	BufferingFactor      uint32
	ElementBytes         uint32
	TempBufferMultiplier uint32
	AlignmentElements    uint64
}

func (e *InsufficientBufferError) Error() string {
	return fmt.Sprintf("tiling: buffer of %d bytes (buffering x%d) cannot hold %d aligned elements of %d bytes with %d temporary buffers",
		e.BufferBytes, e.BufferingFactor, e.AlignmentElements, e.ElementBytes, e.TempBufferMultiplier)
}

// Is reports whether target is ErrInsufficientBuffer.
func (e *InsufficientBufferError) Is(target error) bool { return target == ErrInsufficientBuffer }

// EncodingOverflowError reports a tiling key that cannot be represented, or a
// malformed axis list. It always indicates a caller programming error.
type EncodingOverflowError struct {
	Axis   int // Index of the axis being folded when the failure occurred, -1 if none
	Reason string
}

func (e *EncodingOverflowError) Error() string {
	if e.Axis < 0 {
		return "tiling: key encoding: " + e.Reason
	}
	return fmt.Sprintf("tiling: key encoding axis %d: %s", e.Axis, e.Reason)
}

// Is reports whether target is ErrEncodingOverflow.
func (e *EncodingOverflowError) Is(target error) bool { return target == ErrEncodingOverflow }

// InvariantError reports a plan that failed its own post-condition checks.
// BuildPlan never returns a plan together with this error.
type InvariantError struct {
	Invariant string // Short name, e.g. "coverage"
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("tiling: %s invariant violated: %s", e.Invariant, e.Detail)
}

// Is reports whether target is ErrInvariant.
func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }
