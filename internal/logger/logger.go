// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	logLevelDebug = "debug"
	logLevelInfo  = "info"
	logLevelWarn  = "warn"
	logLevelError = "error"
)

// emitterHandler tags records logged under an active span with its trace and
// span ids so log lines can be joined with the exported traces.
type emitterHandler struct {
	handler slog.Handler
}

func NewLogger(logContext map[string]string, level string, w io.Writer) *slog.Logger {
	attrs := []slog.Attr{}
	for key, value := range logContext {
		attrs = append(attrs, slog.Attr{Key: key, Value: slog.StringValue(value)})
	}
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}).WithAttrs(attrs)
	return slog.New(emitterHandler{jsonHandler})
}

// NewEmitter is NewLogger with a single emitter attribute.
func NewEmitter(emitter, level string, w io.Writer) *slog.Logger {
	return NewLogger(map[string]string{"emitter": emitter}, level, w)
}

func ParseLevel(level string) slog.Level {
	switch level {
	case logLevelDebug:
		return slog.LevelDebug
	case logLevelInfo:
		return slog.LevelInfo
	case logLevelWarn:
		return slog.LevelWarn
	case logLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h emitterHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r = r.Clone()
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.handler.Handle(ctx, r)
}

func (h emitterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h emitterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return emitterHandler{h.handler.WithAttrs(attrs)}
}

func (h emitterHandler) WithGroup(name string) slog.Handler {
	return emitterHandler{h.handler.WithGroup(name)}
}
