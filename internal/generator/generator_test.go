// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator(t *testing.T) {
	t.Run("should be reproducible for a fixed seed", func(t *testing.T) {
		assert := assert.New(t)
		a := New(99).Random(64)
		b := New(99).Random(64)
		assert.Equal(a, b)
		assert.NotEqual(a, New(100).Random(64))
	})

	t.Run("should refill the buffer in place", func(t *testing.T) {
		assert := assert.New(t)
		g := New(3)
		buf := make([]int, 32)
		g.Fill(buf)
		first := append([]int(nil), buf...)
		g.Fill(buf)
		assert.Len(buf, 32)
		assert.NotEqual(first, buf)
	})

	t.Run("should cover negative and positive values", func(t *testing.T) {
		assert := assert.New(t)
		buf := New(5).Random(1_000)
		var negative, positive int
		for _, v := range buf {
			if v < 0 {
				negative++
			} else if v > 0 {
				positive++
			}
		}
		assert.Greater(negative, 100)
		assert.Greater(positive, 100)
	})

	t.Run("should keep self-test values in range", func(t *testing.T) {
		assert := assert.New(t)
		buf := New(8).SelfTest(5_000)
		assert.Len(buf, 5_000)
		seenLow, seenHigh := false, false
		for _, v := range buf {
			assert.GreaterOrEqual(v, SelfTestLow)
			assert.LessOrEqual(v, SelfTestHigh)
			seenLow = seenLow || v == SelfTestLow
			seenHigh = seenHigh || v == SelfTestHigh
		}
		assert.True(seenLow)
		assert.True(seenHigh)
	})
}

func TestDescending(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{4, 3, 2, 1, 0}, Descending(5))
	assert.Equal([]int{0}, Descending(1))
	assert.Empty(Descending(0))
}
