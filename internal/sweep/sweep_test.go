// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizes(t *testing.T) {
	t.Run("should produce the arithmetic progression up to max", func(t *testing.T) {
		assert := assert.New(t)
		s, err := New(20, 100, 20)
		require.NoError(t, err)
		assert.Equal([]int{20, 40, 60, 80, 100}, s.Sizes())
		assert.Equal(5, s.Len())
	})

	t.Run("should not exceed max when the step does not divide the range", func(t *testing.T) {
		assert := assert.New(t)
		s, err := New(5, 20, 7)
		require.NoError(t, err)
		assert.Equal([]int{5, 12, 19}, s.Sizes())
		assert.Equal(3, s.Len())
	})

	t.Run("should replace a zero min by the step", func(t *testing.T) {
		assert := assert.New(t)
		s, err := New(0, 60, 20)
		require.NoError(t, err)
		assert.Equal(20, s.Start())
		assert.Equal([]int{20, 40, 60}, s.Sizes())
	})

	t.Run("should include a single size when min equals max", func(t *testing.T) {
		s, err := New(50, 50, 10)
		require.NoError(t, err)
		assert.Equal(t, []int{50}, s.Sizes())
	})

	t.Run("should match the default sweep", func(t *testing.T) {
		assert := assert.New(t)
		s, err := New(20, 2000, 20)
		require.NoError(t, err)
		sizes := s.Sizes()
		assert.Len(sizes, 100)
		assert.Equal(20, sizes[0])
		assert.Equal(2000, sizes[99])
	})
}

func TestCeiling(t *testing.T) {
	t.Run("should accept the largest sweep", func(t *testing.T) {
		assert := assert.New(t)
		s, err := New(MaxSize-MaxLen+1, MaxSize, 1)
		require.NoError(t, err)
		sizes := s.Sizes()
		assert.Len(sizes, MaxLen)
		assert.Equal(MaxSize, sizes[len(sizes)-1])
	})

	t.Run("should accept a single size at the ceiling", func(t *testing.T) {
		s, err := New(0, MaxSize, MaxSize)
		require.NoError(t, err)
		assert.Equal(t, []int{MaxSize}, s.Sizes())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
	}{
		{name: "zero step", sweep: Sweep{Min: 1, Max: 10, Step: 0}},
		{name: "negative step", sweep: Sweep{Min: 1, Max: 10, Step: -1}},
		{name: "negative min", sweep: Sweep{Min: -5, Max: 10, Step: 1}},
		{name: "max below min", sweep: Sweep{Min: 20, Max: 10, Step: 1}},
		{name: "max below substituted min", sweep: Sweep{Min: 0, Max: 10, Step: 20}},
		{name: "max at the int limit", sweep: Sweep{Min: 1, Max: math.MaxInt, Step: 1}},
		{name: "max above the size ceiling", sweep: Sweep{Min: MaxSize, Max: MaxSize + 1, Step: 1}},
		{name: "too many sizes", sweep: Sweep{Min: 1, Max: MaxLen + 1, Step: 1}},
		{name: "huge step", sweep: Sweep{Min: 0, Max: MaxSize, Step: math.MaxInt}},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			assert := assert.New(t)
			err := tt.sweep.Validate()
			assert.ErrorIs(err, ErrInvalidSweep)
			assert.Equal(0, tt.sweep.Len())
			assert.Empty(tt.sweep.Sizes())
		})
	}
}
