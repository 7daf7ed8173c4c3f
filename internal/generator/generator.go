// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generator

import (
	"math/rand"
	"time"
)

const (
	SelfTestLow  = -100
	SelfTestHigh = 100
)

// Generator produces benchmark inputs. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed, or with the current time when
// seed is zero.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Fill overwrites buf with values uniform over the whole int range.
func (g *Generator) Fill(buf []int) {
	for i := range buf {
		buf[i] = int(g.rng.Uint64())
	}
}

// Random allocates and fills a slice of the given size.
func (g *Generator) Random(size int) []int {
	buf := make([]int, size)
	g.Fill(buf)
	return buf
}

// SelfTest returns size values uniform in [SelfTestLow, SelfTestHigh].
func (g *Generator) SelfTest(size int) []int {
	buf := make([]int, size)
	for i := range buf {
		buf[i] = SelfTestLow + g.rng.Intn(SelfTestHigh-SelfTestLow+1)
	}
	return buf
}

// Descending returns size-1, size-2, ..., 0, the input that drives the
// first-element-pivot quicksort into its quadratic case.
func Descending(size int) []int {
	buf := make([]int, size)
	for i := range buf {
		buf[i] = size - 1 - i
	}
	return buf
}
