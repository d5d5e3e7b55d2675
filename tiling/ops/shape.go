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

package ops

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-tiling/tiling"
)

// Shape is a resolved tensor shape, outermost dimension first. A nil or
// empty Shape is a scalar.
type Shape []int64

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias s.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	return append(Shape{}, s...)
}

// String renders the shape as "[d0,d1,...]".
func (s Shape) String() string {
	return "[" + strings.Join(lo.Map(s, func(d int64, _ int) string {
		return strconv.FormatInt(d, 10)
	}), ",") + "]"
}

// Validate rejects negative dimensions.
func (s Shape) Validate() error {
	for i, d := range s {
		if d < 0 {
			return shapeErrorf("dimension %d of %s is negative", i, s)
		}
	}
	return nil
}

// NumElements returns the product of the dimensions (1 for a scalar), or an
// error if a dimension is negative or the product overflows 64 bits.
func (s Shape) NumElements() (uint64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	n := uint64(1)
	for _, d := range s {
		hi, prod := bits.Mul64(n, uint64(d))
		if hi != 0 {
			return 0, shapeErrorf("%s has more than 2^64 elements", s)
		}
		n = prod
	}
	return n, nil
}

// InnerDim returns the innermost dimension, or 1 for a scalar.
func (s Shape) InnerDim() int64 {
	if len(s) == 0 {
		return 1
	}
	return s[len(s)-1]
}

// ParseShape parses a comma-separated dimension list such as "8,1000".
// The empty string is a scalar.
func ParseShape(text string) (Shape, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	if text == "" {
		return Shape{}, nil
	}
	parts := strings.Split(text, ",")
	shape := make(Shape, len(parts))
	for i, p := range parts {
		d, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, shapeErrorf("bad dimension %q in %q", p, text)
		}
		shape[i] = d
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape, nil
}

// BroadcastShapes applies numpy broadcasting: shapes are right-aligned and
// each dimension pair must be equal or contain a 1.
func BroadcastShapes(a, b Shape) (Shape, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	for i := range rank {
		da, db := int64(1), int64(1)
		if j := len(a) - rank + i; j >= 0 {
			da = a[j]
		}
		if j := len(b) - rank + i; j >= 0 {
			db = b[j]
		}
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
		case db == 1:
			out[i] = da
		default:
			return nil, shapeErrorf("cannot broadcast %s with %s at axis %d", a, b, i)
		}
	}
	return out, nil
}

func shapeErrorf(format string, args ...any) *tiling.ConfigError {
	return &tiling.ConfigError{Field: "shape", Reason: fmt.Sprintf(format, args...)}
}
