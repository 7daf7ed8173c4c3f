// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewLogger(t *testing.T) {
	t.Run("should write JSON records with context attributes", func(t *testing.T) {
		assert := assert.New(t)
		var buf bytes.Buffer
		l := NewEmitter("sort-benchmark-harness", "info", &buf)
		l.With("size", 20).Info("Size completed", "merge", 1200)

		record := map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal("sort-benchmark-harness", record["emitter"])
		assert.Equal("Size completed", record["msg"])
		assert.Equal(float64(20), record["size"])
		assert.Equal(float64(1200), record["merge"])
	})

	t.Run("should drop records below the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewEmitter("test", "warn", &buf)
		l.Info("hidden")
		assert.Zero(t, buf.Len())
		l.WithGroup("g").Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestTraceCorrelation(t *testing.T) {
	t.Run("should tag records logged under a span", func(t *testing.T) {
		assert := assert.New(t)
		var buf bytes.Buffer
		l := NewEmitter("test", "info", &buf)
		provider := sdktrace.NewTracerProvider()
		defer provider.Shutdown(context.Background())
		ctx, span := provider.Tracer("test").Start(context.Background(), "run")
		defer span.End()

		l.With("size", 5).InfoContext(ctx, "Size completed")

		record := map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(span.SpanContext().TraceID().String(), record["trace_id"])
		assert.Equal(span.SpanContext().SpanID().String(), record["span_id"])
		assert.Equal(float64(5), record["size"])
	})

	t.Run("should leave records without a span untouched", func(t *testing.T) {
		assert := assert.New(t)
		var buf bytes.Buffer
		NewEmitter("test", "info", &buf).InfoContext(context.Background(), "plain")

		record := map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.NotContains(record, "trace_id")
		assert.NotContains(record, "span_id")
	})
}

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(slog.LevelInfo, ParseLevel("info"))
	assert.Equal(slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(slog.LevelError, ParseLevel("error"))
	assert.Equal(slog.LevelInfo, ParseLevel("verbose"))
}
