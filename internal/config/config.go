// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/tsuru/sort-benchmark/internal/bench"
	"github.com/tsuru/sort-benchmark/internal/sweep"
)

const Prefix = "SORTBENCH"

var ErrInvalid = errors.New("invalid configuration")

type Specification struct {
	Times         int    `default:"2000" envconfig:"times"`
	MinSize       int    `default:"20" envconfig:"min_size"`
	MaxSize       int    `default:"2000" envconfig:"max_size"`
	Step          int    `default:"20" envconfig:"step"`
	Seed          int64  `default:"0" envconfig:"seed"`
	SelfTestSize  int    `default:"20" envconfig:"self_test_size"`
	OutputDir     string `default:"results" envconfig:"output_dir"`
	LogLevel      string `default:"info" envconfig:"log_level"`
	TraceEndpoint string `envconfig:"trace_endpoint"`
	ServerAddr    string `envconfig:"server_addr"`
}

// Load reads the configuration from SORTBENCH_* environment variables.
func Load() (Specification, error) {
	var spec Specification
	if err := envconfig.Process(Prefix, &spec); err != nil {
		return Specification{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := spec.Validate(); err != nil {
		return Specification{}, err
	}
	return spec, nil
}

func (s Specification) Validate() error {
	if s.SelfTestSize < 0 {
		return fmt.Errorf("%w: self-test size must not be negative, got %d", ErrInvalid, s.SelfTestSize)
	}
	if s.OutputDir == "" {
		return fmt.Errorf("%w: output dir must be set", ErrInvalid)
	}
	if err := s.Bench().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Bench is the harness configuration described by s.
func (s Specification) Bench() bench.Config {
	return bench.Config{
		Times: s.Times,
		Sweep: sweep.Sweep{Min: s.MinSize, Max: s.MaxSize, Step: s.Step},
		Seed:  s.Seed,
	}
}
