// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/tsuru/sort-benchmark/internal/sorting"
	"github.com/tsuru/sort-benchmark/internal/sweep"
)

// QuickWorst names the quicksort series measured on descending input.
const QuickWorst = "quick_worst"

var (
	ErrNoSizes       = errors.New("size sweep is empty")
	ErrInvalidConfig = errors.New("invalid benchmark config")
)

// Config is the immutable description of one benchmark run.
type Config struct {
	Times int         `json:"times" msgpack:"times"`
	Sweep sweep.Sweep `json:"sweep" msgpack:"sweep"`
	Seed  int64       `json:"seed" msgpack:"seed"`
}

func (c Config) Validate() error {
	if c.Times <= 0 {
		return fmt.Errorf("%w: times must be positive, got %d", ErrInvalidConfig, c.Times)
	}
	if err := c.Sweep.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrNoSizes, err)
	}
	return nil
}

// Row holds the averages of one size, aligned with SeriesNames.
type Row struct {
	Size     int     `json:"size" msgpack:"size"`
	Averages []int64 `json:"averages" msgpack:"averages"`
}

// Average returns the average of the named series in this row.
func (r Row) Average(name string) (time.Duration, bool) {
	for i, n := range SeriesNames() {
		if n == name && i < len(r.Averages) {
			return time.Duration(r.Averages[i]), true
		}
	}
	return 0, false
}

type Series struct {
	Name     string  `json:"name" msgpack:"name"`
	Averages []int64 `json:"averages" msgpack:"averages"`
}

// Result holds one average per size for every series, index-aligned with
// Sizes. Averages are nanoseconds.
type Result struct {
	Config Config   `json:"config" msgpack:"config"`
	Sizes  []int    `json:"sizes" msgpack:"sizes"`
	Series []Series `json:"series" msgpack:"series"`
}

func newResult(cfg Config, capacity int) *Result {
	names := SeriesNames()
	r := &Result{
		Config: cfg,
		Sizes:  make([]int, 0, capacity),
		Series: make([]Series, len(names)),
	}
	for i, name := range names {
		r.Series[i] = Series{Name: name, Averages: make([]int64, 0, capacity)}
	}
	return r
}

func (r *Result) append(row Row) {
	r.Sizes = append(r.Sizes, row.Size)
	for i := range r.Series {
		r.Series[i].Averages = append(r.Series[i].Averages, row.Averages[i])
	}
}

// Lookup returns the named series.
func (r *Result) Lookup(name string) (Series, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Rows rebuilds the per-size rows.
func (r *Result) Rows() []Row {
	rows := make([]Row, len(r.Sizes))
	for i, size := range r.Sizes {
		averages := make([]int64, len(r.Series))
		for j, s := range r.Series {
			averages[j] = s.Averages[i]
		}
		rows[i] = Row{Size: size, Averages: averages}
	}
	return rows
}

// LastRow returns the row of the largest size, or false when no size
// completed.
func (r *Result) LastRow() (Row, bool) {
	if len(r.Sizes) == 0 {
		return Row{}, false
	}
	rows := r.Rows()
	return rows[len(rows)-1], true
}

// SeriesNames lists every measured series: each algorithm on random input
// followed by quicksort on descending input.
func SeriesNames() []string {
	algorithms := sorting.All[int]()
	names := make([]string, 0, len(algorithms)+1)
	for _, a := range algorithms {
		names = append(names, a.Name)
	}
	return append(names, QuickWorst)
}
