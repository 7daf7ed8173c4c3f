// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sorting

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlgorithms(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, algorithm := range All[int]() {
		t.Run(algorithm.Name, func(t *testing.T) {
			t.Run("should sort the reference scenario", func(t *testing.T) {
				assert := assert.New(t)
				data := []int{5, 3, 8, 1, 9, 2}
				algorithm.Sort(data)
				assert.Equal([]int{1, 2, 3, 5, 8, 9}, data)
			})

			t.Run("should treat empty and single element slices as no-ops", func(t *testing.T) {
				assert := assert.New(t)
				empty := []int{}
				algorithm.Sort(empty)
				assert.Empty(empty)
				var nilSlice []int
				algorithm.Sort(nilSlice)
				assert.Nil(nilSlice)
				single := []int{-3}
				algorithm.Sort(single)
				assert.Equal([]int{-3}, single)
			})

			t.Run("should produce a sorted permutation of random input", func(t *testing.T) {
				assert := assert.New(t)
				for _, size := range []int{2, 3, 7, 64, 513} {
					data := make([]int, size)
					for i := range data {
						data[i] = rng.Intn(41) - 20
					}
					want := slices.Clone(data)
					slices.Sort(want)
					algorithm.Sort(data)
					assert.Equal(want, data, "size %d", size)
				}
			})

			t.Run("should handle the full integer range", func(t *testing.T) {
				assert := assert.New(t)
				data := []int{math.MaxInt, 0, math.MinInt, -1, math.MaxInt, 1, math.MinInt}
				algorithm.Sort(data)
				assert.Equal([]int{math.MinInt, math.MinInt, -1, 0, 1, math.MaxInt, math.MaxInt}, data)
			})

			t.Run("should leave sorted input unchanged", func(t *testing.T) {
				assert := assert.New(t)
				data := []int{-4, -4, 0, 1, 1, 2, 9, 100}
				want := slices.Clone(data)
				algorithm.Sort(data)
				assert.Equal(want, data)
			})

			t.Run("should sort strictly descending input", func(t *testing.T) {
				assert := assert.New(t)
				data := make([]int, 300)
				for i := range data {
					data[i] = len(data) - 1 - i
				}
				algorithm.Sort(data)
				assert.True(slices.IsSorted(data))
				assert.Equal(0, data[0])
				assert.Equal(299, data[299])
			})
		})
	}
}

func TestAlgorithmsWithStrings(t *testing.T) {
	for _, algorithm := range All[string]() {
		t.Run(algorithm.Name, func(t *testing.T) {
			data := []string{"pear", "apple", "fig", "apple", "banana"}
			algorithm.Sort(data)
			assert.Equal(t, []string{"apple", "apple", "banana", "fig", "pear"}, data)
		})
	}
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)
	a, ok := Lookup[int](Merge)
	assert.True(ok)
	assert.Equal(Merge, a.Name)
	_, ok = Lookup[int]("bogo")
	assert.False(ok)
	assert.Len(All[int](), 6)
}

func TestSelectionSortWithDuplicatedMaximum(t *testing.T) {
	assert := assert.New(t)
	data := []int{3, 9, 9, 1, 9}
	SelectionSort(data)
	assert.Equal([]int{1, 3, 9, 9, 9}, data)
}

type record struct {
	key   int
	label string
}

func byKey(a, b record) int {
	return cmp.Compare(a.key, b.key)
}

func TestStableSorts(t *testing.T) {
	stable := map[string]func([]record, func(a, b record) int){
		Insertion: InsertionSortFunc[record],
		Merge:     MergeSortFunc[record],
	}
	for name, sort := range stable {
		t.Run(name, func(t *testing.T) {
			t.Run("should keep equal keys in input order", func(t *testing.T) {
				assert := assert.New(t)
				data := []record{{2, "first"}, {2, "second"}, {1, "third"}}
				sort(data, byKey)
				assert.Equal([]record{{1, "third"}, {2, "first"}, {2, "second"}}, data)
			})

			t.Run("should match slices.SortStableFunc on random input", func(t *testing.T) {
				assert := assert.New(t)
				rng := rand.New(rand.NewSource(11))
				data := make([]record, 200)
				for i := range data {
					data[i] = record{key: rng.Intn(10), label: string(rune('a' + i%26))}
				}
				want := slices.Clone(data)
				slices.SortStableFunc(want, byKey)
				sort(data, byKey)
				assert.Equal(want, data)
			})
		})
	}
}

func TestMergeSortTwoEqualElements(t *testing.T) {
	assert := assert.New(t)
	data := []int{2, 2, 1}
	MergeSort(data)
	assert.Equal([]int{1, 2, 2}, data)
}

func TestPartition(t *testing.T) {
	t.Run("should reduce descending input by one element", func(t *testing.T) {
		assert := assert.New(t)
		data := []int{4, 3, 2, 1, 0}
		r := Partition(data)
		assert.Equal(4, r)
		assert.Equal([]int{0, 3, 2, 1, 4}, data)

		r = Partition(data[:r])
		assert.Equal(0, r)
		assert.Equal([]int{0, 3, 2, 1, 4}, data)

		rest := data[1:4]
		r = Partition(rest)
		assert.Equal(2, r)
		assert.Equal([]int{1, 2, 3}, rest)
	})

	t.Run("should place the pivot at its final index", func(t *testing.T) {
		assert := assert.New(t)
		data := []int{5, 3, 8, 1, 9, 2}
		r := Partition(data)
		assert.Equal(5, data[r])
		for _, v := range data[:r] {
			assert.LessOrEqual(v, 5)
		}
		for _, v := range data[r+1:] {
			assert.GreaterOrEqual(v, 5)
		}
	})

	t.Run("should leave an ascending pair in place", func(t *testing.T) {
		assert := assert.New(t)
		data := []int{1, 2}
		assert.Equal(1, Partition(data))
		assert.Equal([]int{1, 2}, data)
	})

	t.Run("should swap a descending pair", func(t *testing.T) {
		assert := assert.New(t)
		data := []int{2, 1}
		assert.Equal(1, Partition(data))
		assert.Equal([]int{1, 2}, data)
	})
}

func BenchmarkAlgorithms(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	random := make([]int, 1_000)
	for i := range random {
		random[i] = int(rng.Uint64())
	}
	data := make([]int, len(random))

	for _, algorithm := range All[int]() {
		b.Run(algorithm.Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(data, random)
				algorithm.Sort(data)
			}
		})
	}
}
