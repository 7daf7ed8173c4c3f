// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repository

import (
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/tsuru/sort-benchmark/internal/bench"
)

var (
	ErrUnknownRun    = errors.New("unknown run")
	ErrUnknownSeries = errors.New("unknown series")
)

// ResultRepository keeps finished runs in memory together with their
// pre-rendered JSON.
type ResultRepository struct {
	sync.Mutex
	logger  *slog.Logger
	Data    map[string][]byte
	results map[string]*bench.Result
}

func NewResultRepository(logger *slog.Logger) *ResultRepository {
	return &ResultRepository{
		logger:  logger,
		Data:    make(map[string][]byte),
		results: make(map[string]*bench.Result),
	}
}

// Store replaces the result kept under id.
func (r *ResultRepository) Store(id string, result *bench.Result) error {
	dataBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		r.logger.Error("Error marshaling JSON", "run", id, "error", err)
		return err
	}

	r.Lock()
	defer r.Unlock()
	r.Data[id] = dataBytes
	r.results[id] = result
	r.logger.Info("Stored run", "run", id, "sizes", len(result.Sizes))
	return nil
}

func (r *ResultRepository) GetResultJSON(id string) ([]byte, bool) {
	r.Lock()
	defer r.Unlock()
	dataBytes, exists := r.Data[id]
	return dataBytes, exists
}

func (r *ResultRepository) GetResult(id string) (*bench.Result, bool) {
	r.Lock()
	defer r.Unlock()
	result, exists := r.results[id]
	return result, exists
}

// GetSeries returns the sizes and the named series of a run.
func (r *ResultRepository) GetSeries(id, name string) ([]int, bench.Series, error) {
	result, ok := r.GetResult(id)
	if !ok {
		return nil, bench.Series{}, ErrUnknownRun
	}
	series, ok := result.Lookup(name)
	if !ok {
		return nil, bench.Series{}, ErrUnknownSeries
	}
	return result.Sizes, series, nil
}

func (r *ResultRepository) ListRuns() []string {
	r.Lock()
	defer r.Unlock()
	runs := make([]string, 0, len(r.Data))
	for key := range r.Data {
		runs = append(runs, key)
	}
	slices.Sort(runs)
	return runs
}
