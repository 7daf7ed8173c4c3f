// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tsuru/sort-benchmark/internal/bench"
)

const (
	defaultQueueSize  = 16
	subscriberBacklog = 64
)

type request struct {
	id  string
	cfg bench.Config
}

// RunManager executes benchmark runs one at a time on a single worker
// goroutine, so no two runs ever share the CPU while timing.
type RunManager struct {
	mu          sync.Mutex
	logger      *slog.Logger
	store       ResultStore
	queue       chan request
	runs        map[string]*run
	subscribers map[int]chan RowEvent
	nextSubID   int
	ctx         context.Context
	cancel      context.CancelFunc
	started     bool
	stopped     bool
	workerDone  chan struct{}
}

func NewRunManager(store ResultStore, logger *slog.Logger) *RunManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &RunManager{
		logger:      logger,
		store:       store,
		queue:       make(chan request, defaultQueueSize),
		runs:        map[string]*run{},
		subscribers: map[int]chan RowEvent{},
		ctx:         ctx,
		cancel:      cancel,
		workerDone:  make(chan struct{}),
	}
}

func (m *RunManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true
	go m.work()
}

// Stop cancels the running benchmark between sizes, fails every queued run
// and waits for the worker to exit.
func (m *RunManager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.cancel()
	close(m.queue)
	if !m.started {
		m.started = true
		go m.work()
	}
	m.mu.Unlock()

	<-m.workerDone

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subscribers {
		close(ch)
		delete(m.subscribers, id)
	}
}

// Submit queues a run under id.
func (m *RunManager) Submit(id string, cfg bench.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return ErrStopped
	}
	if _, exists := m.runs[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRun, id)
	}
	select {
	case m.queue <- request{id: id, cfg: cfg}:
	default:
		return ErrQueueFull
	}
	m.runs[id] = &run{
		status: RunStatus{ID: id, State: StateQueued, Config: cfg},
		done:   make(chan struct{}),
	}
	m.logger.Info("Run queued", "run", id, "times", cfg.Times, "sizes", cfg.Sweep.Len())
	return nil
}

// Wait blocks until the run finishes or ctx is done.
func (m *RunManager) Wait(ctx context.Context, id string) (RunStatus, error) {
	m.mu.Lock()
	r, ok := m.runs[id]
	m.mu.Unlock()
	if !ok {
		return RunStatus{}, ErrUnknownRun
	}
	select {
	case <-r.done:
		return m.Status(id)
	case <-ctx.Done():
		return RunStatus{}, ctx.Err()
	}
}

func (m *RunManager) Status(id string) (RunStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return RunStatus{}, ErrUnknownRun
	}
	return r.status, nil
}

func (m *RunManager) ListRunIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.runs))
	for id := range m.runs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Subscribe returns a channel receiving every completed row. Slow
// subscribers miss rows instead of stalling the benchmark.
func (m *RunManager) Subscribe() (int, <-chan RowEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan RowEvent, subscriberBacklog)
	if m.stopped {
		close(ch)
		return -1, ch
	}
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = ch
	return id, ch
}

func (m *RunManager) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.subscribers[id]; ok {
		close(ch)
		delete(m.subscribers, id)
	}
}

func (m *RunManager) SubscriberCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}

func (m *RunManager) work() {
	defer close(m.workerDone)
	for req := range m.queue {
		if m.ctx.Err() != nil {
			m.finish(req.id, StateCancelled, m.ctx.Err())
			continue
		}
		m.execute(req)
	}
}

func (m *RunManager) execute(req request) {
	m.setState(req.id, StateRunning)
	activeRunsGauge.Inc()
	defer activeRunsGauge.Dec()

	start := time.Now()
	logger := m.logger.With("run", req.id)
	harness := bench.New(req.cfg, logger, &runObserver{manager: m, id: req.id})
	result, err := harness.Run(m.ctx)
	switch {
	case errors.Is(err, context.Canceled):
		m.finish(req.id, StateCancelled, err)
	case err != nil:
		m.finish(req.id, StateFailed, err)
	default:
		if err := m.store.Store(req.id, result); err != nil {
			m.finish(req.id, StateFailed, err)
			return
		}
		logger.Info("Run finished", "duration", time.Since(start))
		m.finish(req.id, StateDone, nil)
	}
}

func (m *RunManager) setState(id, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.runs[id]; ok {
		r.status.State = state
	}
}

func (m *RunManager) finish(id, state string, err error) {
	runsCounterVec.WithLabelValues(state).Inc()
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return
	}
	r.status.State = state
	if err != nil {
		r.status.Error = err.Error()
		m.logger.Error("Run did not complete", "run", id, "state", state, "error", err)
	}
	close(r.done)
}

func (m *RunManager) publish(event RowEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.runs[event.Run]; ok {
		r.status.CompletedSizes++
	}
	for _, ch := range m.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

type runObserver struct {
	manager *RunManager
	id      string
}

func (o *runObserver) ObserveTrial(series string, size int, elapsed time.Duration) {
	trialDurationHistogramVec.WithLabelValues(series).Observe(elapsed.Seconds())
}

func (o *runObserver) ObserveRow(row bench.Row) {
	currentSizeGauge.Set(float64(row.Size))
	for i, name := range bench.SeriesNames() {
		if i < len(row.Averages) {
			averageDurationGaugeVec.WithLabelValues(name).Set(float64(row.Averages[i]))
		}
	}
	o.manager.publish(RowEvent{Run: o.id, Row: row})
}
