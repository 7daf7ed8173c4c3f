// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sorting

// InsertionSortFunc is InsertionSort ordered by cmp, for element types that
// carry more than their sort key.
func InsertionSortFunc[E any](s []E, cmp func(a, b E) int) {
	for i := 1; i < len(s); i++ {
		j := i
		for j > 0 && cmp(s[i], s[j-1]) < 0 {
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

// MergeSortFunc is MergeSort ordered by cmp.
func MergeSortFunc[E any](s []E, cmp func(a, b E) int) {
	buf := make([]E, 0, len(s))
	mergeSortFunc(s, buf, cmp)
}

func mergeSortFunc[E any](s []E, buf []E, cmp func(a, b E) int) {
	switch len(s) {
	case 0, 1:
		return
	case 2:
		if cmp(s[0], s[1]) > 0 {
			s[0], s[1] = s[1], s[0]
		}
		return
	}
	mid := len(s) / 2
	mergeSortFunc(s[:mid], buf, cmp)
	mergeSortFunc(s[mid:], buf, cmp)

	left, right := s[:mid], s[mid:]
	out := buf[:0]
	l, r := 0, 0
	for l < len(left) && r < len(right) {
		if cmp(right[r], left[l]) < 0 {
			out = append(out, right[r])
			r++
		} else {
			out = append(out, left[l])
			l++
		}
	}
	out = append(out, left[l:]...)
	out = append(out, right[r:]...)
	copy(s, out)
}
