// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selftest checks every algorithm against slices.Sort before any
// timing is trusted.
package selftest

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tsuru/sort-benchmark/internal/heap"
	"github.com/tsuru/sort-benchmark/internal/sorting"
)

var (
	ErrMismatch      = errors.New("sort result differs from reference")
	ErrHeapInvariant = errors.New("heapify is incorrect")
)

// Run heapifies a copy of input and sorts a copy with every algorithm in
// algorithms. The first failure is returned and names the algorithm.
func Run(input []int, algorithms []sorting.Algorithm[int], logger *slog.Logger) error {
	logger.Debug("Self-test input", "array", input)

	heapified := slices.Clone(input)
	heap.Heapify(heapified)
	logger.Debug("Heapification", "array", heapified)
	if !isHeapified(heapified, 0) {
		return fmt.Errorf("%w: %v", ErrHeapInvariant, heapified)
	}

	want := slices.Clone(input)
	slices.Sort(want)
	logger.Debug("Default sorted", "array", want)

	for _, a := range algorithms {
		got := slices.Clone(input)
		a.Sort(got)
		logger.Debug("Sorted", "algorithm", a.Name, "array", got)
		if !slices.Equal(want, got) {
			return fmt.Errorf("%w: %s sort is incorrect: got %v, want %v", ErrMismatch, a.Name, got, want)
		}
	}
	logger.Info("Self-test passed", "algorithms", len(algorithms), "size", len(input))
	return nil
}

// isHeapified walks the tree from top, independent of heap.IsValid.
func isHeapified(data []int, top int) bool {
	for _, child := range [2]int{top*2 + 1, top*2 + 2} {
		if child < len(data) && (data[child] > data[top] || !isHeapified(data, child)) {
			return false
		}
	}
	return true
}
