// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"errors"
	"fmt"
)

var ErrInvalidSweep = errors.New("invalid size sweep")

const (
	// MaxSize is the largest benchmarked input. Three buffers of this many
	// ints are live per size, and the quadratic sorts are already far beyond
	// practical running time here.
	MaxSize = 1 << 24
	// MaxLen bounds the number of sizes in one sweep.
	MaxLen = 10_000
)

// Sweep describes the sizes min, min+step, ... up to and including max.
type Sweep struct {
	Min  int `json:"min" msgpack:"min"`
	Max  int `json:"max" msgpack:"max"`
	Step int `json:"step" msgpack:"step"`
}

func New(min, max, step int) (Sweep, error) {
	s := Sweep{Min: min, Max: max, Step: step}
	if err := s.Validate(); err != nil {
		return Sweep{}, err
	}
	return s, nil
}

func (s Sweep) Validate() error {
	if s.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidSweep, s.Step)
	}
	if s.Min < 0 {
		return fmt.Errorf("%w: min must not be negative, got %d", ErrInvalidSweep, s.Min)
	}
	if s.Max > MaxSize {
		return fmt.Errorf("%w: max %d exceeds the size ceiling %d", ErrInvalidSweep, s.Max, MaxSize)
	}
	if s.Max < s.Start() {
		return fmt.Errorf("%w: max %d is below the first size %d", ErrInvalidSweep, s.Max, s.Start())
	}
	if n := s.count(); n > MaxLen {
		return fmt.Errorf("%w: %d sizes exceed the ceiling of %d per sweep", ErrInvalidSweep, n, MaxLen)
	}
	return nil
}

// Start is the first benchmarked size. A zero min is replaced by step
// since an empty slice is never measured.
func (s Sweep) Start() int {
	if s.Min == 0 {
		return s.Step
	}
	return s.Min
}

func (s Sweep) Len() int {
	if s.Validate() != nil {
		return 0
	}
	return s.count()
}

// count assumes Step > 0 and Start() <= Max <= MaxSize.
func (s Sweep) count() int {
	return (s.Max-s.Start())/s.Step + 1
}

func (s Sweep) Sizes() []int {
	n := s.Len()
	sizes := make([]int, 0, n)
	if n == 0 {
		return sizes
	}
	for i := 0; i < n; i++ {
		sizes = append(sizes, s.Start()+i*s.Step)
	}
	return sizes
}
