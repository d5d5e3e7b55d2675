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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-tiling/tiling"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		text string
		want Shape
	}{
		{"8,1000", Shape{8, 1000}},
		{"[2, 3]", Shape{2, 3}},
		{"0", Shape{0}},
		{"", Shape{}},
		{"[]", Shape{}},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}

	for _, bad := range []string{"2,x", "-1", "3,,4"} {
		_, err := ParseShape(bad)
		assert.ErrorIs(t, err, tiling.ErrConfig, bad)
	}
}

func TestShapeNumElements(t *testing.T) {
	n, err := Shape{2, 3, 4}.NumElements()
	require.NoError(t, err)
	assert.Equal(t, uint64(24), n)

	n, err = Shape{}.NumElements()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	n, err = Shape{5, 0}.NumElements()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = Shape{1 << 32, 1 << 32}.NumElements()
	assert.ErrorIs(t, err, tiling.ErrConfig)

	_, err = Shape{3, -1}.NumElements()
	assert.ErrorIs(t, err, tiling.ErrConfig)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "[2,3]", Shape{2, 3}.String())
	assert.Equal(t, "[]", Shape{}.String())
	assert.Equal(t, int64(3), Shape{2, 3}.InnerDim())
	assert.Equal(t, int64(1), Shape{}.InnerDim())
}

func TestShapeClone(t *testing.T) {
	s := Shape{1, 2}
	c := s.Clone()
	c[0] = 9
	assert.Equal(t, Shape{1, 2}, s)
	assert.Nil(t, Shape(nil).Clone())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
	}{
		{Shape{4, 1, 8}, Shape{3, 1}, Shape{4, 3, 8}},
		{Shape{8}, Shape{}, Shape{8}},
		{Shape{1}, Shape{5, 4}, Shape{5, 4}},
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}},
		{Shape{0, 1}, Shape{1, 7}, Shape{0, 7}},
	}
	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "BroadcastShapes(%s, %s)", tt.a, tt.b)
	}

	_, err := BroadcastShapes(Shape{2, 3}, Shape{4})
	assert.ErrorIs(t, err, tiling.ErrConfig)
}
