// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sorting implements the classic in-place comparison sorts that the
// benchmark harness measures.
package sorting

import (
	"cmp"

	"github.com/tsuru/sort-benchmark/internal/heap"
)

const (
	Selection = "selection"
	Insertion = "insertion"
	Bubble    = "bubble"
	Merge     = "merge"
	Heap      = "heap"
	Quick     = "quick"
)

type Func[T cmp.Ordered] func([]T)

type Algorithm[T cmp.Ordered] struct {
	Name string
	Sort Func[T]
}

// All returns every algorithm in reporting order.
func All[T cmp.Ordered]() []Algorithm[T] {
	return []Algorithm[T]{
		{Name: Selection, Sort: SelectionSort[T]},
		{Name: Insertion, Sort: InsertionSort[T]},
		{Name: Bubble, Sort: BubbleSort[T]},
		{Name: Merge, Sort: MergeSort[T]},
		{Name: Heap, Sort: HeapSort[T]},
		{Name: Quick, Sort: QuickSort[T]},
	}
}

// Lookup finds an algorithm by name.
func Lookup[T cmp.Ordered](name string) (Algorithm[T], bool) {
	for _, a := range All[T]() {
		if a.Name == name {
			return a, true
		}
	}
	return Algorithm[T]{}, false
}

// SelectionSort moves the maximum of the unsorted prefix to its end. The
// first occurrence of the maximum wins.
func SelectionSort[T cmp.Ordered](s []T) {
	for last := len(s); last >= 1; last-- {
		maxIdx := 0
		for i := 1; i < last; i++ {
			if s[maxIdx] < s[i] {
				maxIdx = i
			}
		}
		s[maxIdx], s[last-1] = s[last-1], s[maxIdx]
	}
}

// InsertionSort is stable: an element never moves past an equal one.
func InsertionSort[T cmp.Ordered](s []T) {
	for i := 1; i < len(s); i++ {
		j := i
		for j > 0 && s[i] < s[j-1] {
			j--
		}
		if j == i {
			continue
		}
		v := s[i]
		copy(s[j+1:i+1], s[j:i])
		s[j] = v
	}
}

// BubbleSort stops after the first pass without swaps.
func BubbleSort[T cmp.Ordered](s []T) {
	n := len(s)
	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if s[j] > s[j+1] {
				s[j], s[j+1] = s[j+1], s[j]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// MergeSort is stable. A single buffer sized to len(s) is shared by every
// merge step.
func MergeSort[T cmp.Ordered](s []T) {
	buf := make([]T, 0, len(s))
	mergeSort(s, buf)
}

// mergeSort recursion depth is log2(len(s)), so the call stack stays
// shallow for any slice that fits in memory.
func mergeSort[T cmp.Ordered](s []T, buf []T) {
	switch len(s) {
	case 0, 1:
		return
	case 2:
		if s[0] > s[1] {
			s[0], s[1] = s[1], s[0]
		}
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], buf)
	mergeSort(s[mid:], buf)
	copy(s, merge(s[:mid], s[mid:], buf[:0]))
}

// merge appends left and right into buf in order. On equal heads the left
// element goes first.
func merge[T cmp.Ordered](left, right, buf []T) []T {
	l, r := 0, 0
	for l < len(left) && r < len(right) {
		if right[r] < left[l] {
			buf = append(buf, right[r])
			r++
		} else {
			buf = append(buf, left[l])
			l++
		}
	}
	buf = append(buf, left[l:]...)
	return append(buf, right[r:]...)
}

func HeapSort[T cmp.Ordered](s []T) {
	heap.Heapify(s).Sort()
}

type span struct {
	lo, hi int
}

// QuickSort partitions around the first element of each range. Ranges are
// kept on an explicit stack, smaller one on top, so descending input costs
// quadratic time but no deep recursion.
func QuickSort[T cmp.Ordered](s []T) {
	stack := []span{{0, len(s)}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.hi-cur.lo <= 1 {
			continue
		}
		p := cur.lo + Partition(s[cur.lo:cur.hi])
		left, right := span{cur.lo, p}, span{p + 1, cur.hi}
		if left.hi-left.lo < right.hi-right.lo {
			left, right = right, left
		}
		stack = append(stack, left, right)
	}
}

// Partition splits s around s[0] and returns the split index r: everything
// in s[:r] is <= s[r] and everything in s[r+1:] is >= s[r]. len(s) must be
// at least 2.
func Partition[T cmp.Ordered](s []T) int {
	pivot := s[0]
	l, r := 1, len(s)-1
	for l < r {
		for l <= r && s[l] <= pivot {
			l++
		}
		for r >= l && s[r] >= pivot {
			r--
		}
		if l < r {
			s[l], s[r] = s[r], s[l]
		}
	}
	if s[r] < pivot {
		s[0], s[r] = s[r], s[0]
	}
	return r
}
