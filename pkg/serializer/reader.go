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

package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxDocumentSize bounds files loaded with FromFile.
const maxDocumentSize = 1 << 20

// FormatFromPath picks the decoding format from the file extension:
// .json is JSON, anything else (.yaml, .yml, none) is YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		slog.Debug("no recognized extension, decoding as YAML", "path", path)
		return FormatYAML
	}
}

// Decoder reads a single JSON or YAML document. Unless WithLenient is set,
// fields the target type does not declare are rejected.
type Decoder struct {
	format  Format
	lenient bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLenient ignores unknown fields instead of failing.
func WithLenient() DecoderOption {
	return func(d *Decoder) {
		d.lenient = true
	}
}

// NewDecoder returns a Decoder for format. Table output cannot be read back.
func NewDecoder(format Format, opts ...DecoderOption) (*Decoder, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("format %q does not support decoding", format)
	}
	d := &Decoder{format: format}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Decode reads one document from r into v, which must be a pointer.
// An empty input leaves v unchanged.
func (d *Decoder) Decode(r io.Reader, v any) error {
	if r == nil {
		return fmt.Errorf("decode %s: nil input", d.format)
	}

	if d.format == FormatJSON {
		dec := json.NewDecoder(r)
		if !d.lenient {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(!d.lenient)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode YAML: %w", err)
	}
	return nil
}

// FromFile decodes the file at path into a new T, choosing the format with
// FormatFromPath. Files larger than 1 MiB are rejected.
//
// Example:
//
//	cfg, err := FromFile[Config]("/etc/sysunit/config.yaml")
func FromFile[T any](path string, opts ...DecoderOption) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close file", "path", path, "error", cerr)
		}
	}()

	b, err := io.ReadAll(io.LimitReader(f, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if len(b) > maxDocumentSize {
		return nil, fmt.Errorf("%q exceeds %d bytes", path, maxDocumentSize)
	}

	dec, err := NewDecoder(FormatFromPath(path), opts...)
	if err != nil {
		return nil, err
	}

	var v T
	if err := dec.Decode(bytes.NewReader(b), &v); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}

	slog.Debug("loaded file", "path", path, "bytes", len(b))
	return &v, nil
}
