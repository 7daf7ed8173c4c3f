// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"errors"

	"github.com/tsuru/sort-benchmark/internal/bench"
)

const (
	StateQueued    = "queued"
	StateRunning   = "running"
	StateDone      = "done"
	StateFailed    = "failed"
	StateCancelled = "cancelled"
)

var (
	ErrDuplicateRun = errors.New("run already exists")
	ErrQueueFull    = errors.New("run queue is full")
	ErrStopped      = errors.New("run manager is stopped")
	ErrUnknownRun   = errors.New("unknown run")
)

// ResultStore receives finished results.
type ResultStore interface {
	Store(id string, result *bench.Result) error
}

// RunStatus is a snapshot of one run.
type RunStatus struct {
	ID             string       `json:"id"`
	State          string       `json:"state"`
	Config         bench.Config `json:"config"`
	CompletedSizes int          `json:"completedSizes"`
	Error          string       `json:"error,omitempty"`
}

type run struct {
	status RunStatus
	done   chan struct{}
}

// RowEvent is a completed row tagged with its run.
type RowEvent struct {
	Run string    `json:"run"`
	Row bench.Row `json:"row"`
}
