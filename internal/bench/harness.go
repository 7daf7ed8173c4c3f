// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bench measures the average running time of every sorting
// algorithm over a sweep of input sizes.
package bench

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsuru/sort-benchmark/internal/generator"
	"github.com/tsuru/sort-benchmark/internal/sorting"
)

const tracerName = "github.com/tsuru/sort-benchmark/internal/bench"

// Observer is notified outside of the timed section.
type Observer interface {
	ObserveTrial(series string, size int, elapsed time.Duration)
	ObserveRow(row Row)
}

type measurement struct {
	name        string
	sort        sorting.Func[int]
	adversarial bool
}

type Harness struct {
	cfg          Config
	gen          *generator.Generator
	logger       *slog.Logger
	tracer       trace.Tracer
	observers    []Observer
	measurements []measurement
	now          func() time.Time
}

func New(cfg Config, logger *slog.Logger, observers ...Observer) *Harness {
	measurements := []measurement{}
	for _, a := range sorting.All[int]() {
		measurements = append(measurements, measurement{name: a.Name, sort: a.Sort})
	}
	measurements = append(measurements, measurement{name: QuickWorst, sort: sorting.QuickSort[int], adversarial: true})
	return &Harness{
		cfg:          cfg,
		gen:          generator.New(cfg.Seed),
		logger:       logger,
		tracer:       otel.Tracer(tracerName),
		observers:    observers,
		measurements: measurements,
		now:          time.Now,
	}
}

// Run executes the whole sweep sequentially. It stops between sizes when
// ctx is cancelled and returns the sizes completed so far with ctx.Err().
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	if err := h.cfg.Validate(); err != nil {
		return nil, err
	}
	sizes := h.cfg.Sweep.Sizes()
	ctx, span := h.tracer.Start(ctx, "bench.Run", trace.WithAttributes(
		attribute.Int("times", h.cfg.Times),
		attribute.Int("sizes", len(sizes)),
	))
	defer span.End()

	h.logger.InfoContext(ctx, "Starting benchmark", "times", h.cfg.Times, "min", sizes[0], "max", sizes[len(sizes)-1], "step", h.cfg.Sweep.Step)
	result := newResult(h.cfg, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			h.logger.WarnContext(ctx, "Benchmark interrupted", "completedSizes", len(result.Sizes), "error", err)
			return result, err
		}
		row := h.RunSize(ctx, size)
		result.append(row)
	}
	h.logger.InfoContext(ctx, "Finished benchmark", "sizes", len(result.Sizes))
	return result, nil
}

// RunSize runs Times trials of every measurement on inputs of the given
// size and returns the integer-truncated averages.
func (h *Harness) RunSize(ctx context.Context, size int) Row {
	ctx, span := h.tracer.Start(ctx, "bench.RunSize", trace.WithAttributes(attribute.Int("size", size)))
	defer span.End()

	random := make([]int, size)
	adversarial := generator.Descending(size)
	work := make([]int, size)
	totals := make([]int64, len(h.measurements))

	for trial := 0; trial < h.cfg.Times; trial++ {
		h.gen.Fill(random)
		for i, m := range h.measurements {
			if m.adversarial {
				copy(work, adversarial)
			} else {
				copy(work, random)
			}
			elapsed := h.time(m.sort, work)
			totals[i] += elapsed.Nanoseconds()
			for _, o := range h.observers {
				o.ObserveTrial(m.name, size, elapsed)
			}
		}
	}

	row := Row{Size: size, Averages: make([]int64, len(totals))}
	for i, total := range totals {
		row.Averages[i] = total / int64(h.cfg.Times)
	}
	h.logRow(ctx, row)
	for _, o := range h.observers {
		o.ObserveRow(row)
	}
	return row
}

func (h *Harness) time(sort sorting.Func[int], data []int) time.Duration {
	start := h.now()
	sort(data)
	return h.now().Sub(start)
}

func (h *Harness) logRow(ctx context.Context, row Row) {
	args := make([]any, 0, 2+2*len(row.Averages))
	args = append(args, "size", row.Size)
	for i, m := range h.measurements {
		args = append(args, m.name, row.Averages[i])
	}
	h.logger.InfoContext(ctx, "Size completed", args...)
}
