// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsuru/sort-benchmark/internal/bench"
)

const (
	SizesFile  = "sizes.txt"
	ResultFile = "results.json"
)

// SeriesFile is the file holding the averages of the named series.
func SeriesFile(name string) string {
	return name + "_totals.txt"
}

// FormatLine renders values as one line of space-separated integers.
func FormatLine[T ~int | ~int64](values []T) []byte {
	var buf bytes.Buffer
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// FileStore writes results under Dir, one file per series. Every line
// written is echoed to Echo when it is set.
type FileStore struct {
	Dir  string
	Echo io.Writer
}

func (f FileStore) Save(result *bench.Result) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("error creating output dir %s: %w", f.Dir, err)
	}
	if err := f.writeLine(SizesFile, FormatLine(result.Sizes)); err != nil {
		return err
	}
	for _, s := range result.Series {
		if err := f.writeLine(SeriesFile(s.Name), FormatLine(s.Averages)); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling result: %w", err)
	}
	return f.write(ResultFile, data)
}

func (f FileStore) writeLine(name string, line []byte) error {
	if f.Echo != nil {
		if _, err := f.Echo.Write(line); err != nil {
			return fmt.Errorf("error echoing %s: %w", name, err)
		}
	}
	return f.write(name, line)
}

func (f FileStore) write(name string, data []byte) error {
	path := filepath.Join(f.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

func EncodeMsgpack(result *bench.Result) ([]byte, error) {
	var buf bytes.Buffer
	encoder := msgpack.NewEncoder(&buf)
	if err := encoder.Encode(result); err != nil {
		return nil, fmt.Errorf("error encoding result: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeMsgpack(r io.Reader) (*bench.Result, error) {
	var result bench.Result
	if err := msgpack.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding result: %w", err)
	}
	return &result, nil
}
