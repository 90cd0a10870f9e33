// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unitfile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	sdunit "github.com/coreos/go-systemd/v22/unit"

	"github.com/NVIDIA/sysunit/pkg/defaults"
)

// Option configures a Reader.
type Option func(*Reader)

// Reader loads unit definition files from disk. It holds no cache; every call
// reads the file again.
type Reader struct {
	maxSize int
}

// WithMaxSize sets the maximum size (in bytes) of a definition file.
// Default is defaults.UnitFileMaxSize.
func WithMaxSize(size int) Option {
	return func(r *Reader) {
		r.maxSize = size
	}
}

// NewReader creates a new unit file reader with the provided options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		maxSize: defaults.UnitFileMaxSize,
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the full text of the definition file at path.
// Any failure (missing file, permissions, oversize or non UTF-8 content,
// canceled context) yields an empty string; the cause is logged at debug level.
func (r *Reader) Read(ctx context.Context, path string) string {
	b, err := r.load(ctx, path)
	if err != nil {
		slog.Debug("unit file not readable", slog.String("path", path), slog.String("error", err.Error()))
		return ""
	}
	return string(b)
}

// ParseOptions parses definition text, as returned by Read, into its
// section/key/value options.
func ParseOptions(text string) ([]*sdunit.UnitOption, error) {
	opts, err := sdunit.DeserializeOptions(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse unit definition: %w", err)
	}
	return opts, nil
}

func (r *Reader) load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == "" {
		return nil, fmt.Errorf("unit file path cannot be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit file %q: %w", path, err)
	}
	defer f.Close()

	// One byte past the limit tells oversize apart from an exact fit
	b, err := io.ReadAll(io.LimitReader(f, int64(r.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read unit file %q: %w", path, err)
	}

	if len(b) > r.maxSize {
		return nil, fmt.Errorf("unit file %q exceeds maximum size of %d bytes", path, r.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of unit file %q is not valid UTF-8", path)
	}

	return b, nil
}

// Lookup returns every value of name within section, in file order.
func Lookup(opts []*sdunit.UnitOption, section, name string) []string {
	var values []string
	for _, o := range opts {
		if o.Section == section && o.Name == name {
			values = append(values, o.Value)
		}
	}
	return values
}
