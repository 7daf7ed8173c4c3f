// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repository

import (
	"container/heap"
	"slices"

	"github.com/tsuru/sort-benchmark/internal/bench"
)

type Ranked struct {
	Series  string `json:"series"`
	Average int64  `json:"average"`
}

// slowestFirst keeps the slowest retained entry at the root so it can be
// evicted by a faster one.
type slowestFirst []Ranked

func (h slowestFirst) Len() int            { return len(h) }
func (h slowestFirst) Less(i, j int) bool  { return h[i].Average > h[j].Average }
func (h slowestFirst) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *slowestFirst) Push(x interface{}) { *h = append(*h, x.(Ranked)) }

func (h *slowestFirst) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// FastestK returns the k series with the lowest average in row, fastest
// first. Ties keep series order.
func FastestK(row bench.Row, names []string, k int) []Ranked {
	h := &slowestFirst{}
	heap.Init(h)
	for i, avg := range row.Averages {
		if i >= len(names) {
			break
		}
		r := Ranked{Series: names[i], Average: avg}
		if h.Len() < k {
			heap.Push(h, r)
		} else if k > 0 && avg < (*h)[0].Average {
			heap.Pop(h)
			heap.Push(h, r)
		}
	}
	result := make([]Ranked, h.Len())
	copy(result, *h)
	order := func(name string) int { return slices.Index(names, name) }
	slices.SortFunc(result, func(a, b Ranked) int {
		if a.Average != b.Average {
			if a.Average < b.Average {
				return -1
			}
			return 1
		}
		return order(a.Series) - order(b.Series)
	})
	return result
}
