// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap provides a max-heap view over a caller-owned slice.
package heap

import "cmp"

// MaxHeap borrows a slice and keeps the max-heap property over its first
// bound elements. The slice stays owned by the caller.
type MaxHeap[T cmp.Ordered] struct {
	data  []T
	bound int
}

func parent(k int) int {
	return (k - 1) / 2
}

func leftChild(top int) int {
	return top*2 + 1
}

func rightChild(top int) int {
	return top*2 + 2
}

// Heapify rearranges data into a max-heap and returns a view bound to it.
func Heapify[T cmp.Ordered](data []T) *MaxHeap[T] {
	last := len(data) - 1
	if last > 0 {
		for idx := parent(last); idx >= 0; idx-- {
			FixTopToBottom(data, len(data), idx)
		}
	}
	return &MaxHeap[T]{data: data, bound: len(data)}
}

// FixTopToBottom sinks data[top] until neither child below bound is
// greater. The left child is checked first, so the right child only wins
// when it is strictly greater than the left one.
func FixTopToBottom[T cmp.Ordered](data []T, bound, top int) {
	for {
		largest := top
		if l := leftChild(top); l < bound && data[l] > data[largest] {
			largest = l
		}
		if r := rightChild(top); r < bound && data[r] > data[largest] {
			largest = r
		}
		if largest == top {
			return
		}
		data[top], data[largest] = data[largest], data[top]
		top = largest
	}
}

func (h *MaxHeap[T]) Len() int {
	return h.bound
}

// Max returns the root. ok is false on an empty heap.
func (h *MaxHeap[T]) Max() (T, bool) {
	if h.bound == 0 {
		var zero T
		return zero, false
	}
	return h.data[0], true
}

// Sort repeatedly moves the root behind the shrinking bound, leaving the
// underlying slice in ascending order and the heap empty.
func (h *MaxHeap[T]) Sort() {
	for h.bound > 1 {
		h.data[0], h.data[h.bound-1] = h.data[h.bound-1], h.data[0]
		h.bound--
		FixTopToBottom(h.data, h.bound, 0)
	}
	h.bound = 0
}

// IsValid reports whether every in-bound child is not greater than its
// parent.
func IsValid[T cmp.Ordered](data []T, bound int) bool {
	for i := 1; i < bound; i++ {
		if data[i] > data[parent(i)] {
			return false
		}
	}
	return true
}
