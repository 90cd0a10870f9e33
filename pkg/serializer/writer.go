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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
)

const (
	emptyTable = "<empty>"
	scalarKey  = "value"
)

func (f Format) IsUnknown() bool {
	return !slices.Contains(SupportedFormats(), string(f))
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// orJSON returns f, or FormatJSON with a warning when f is not supported.
func orJSON(f Format) Format {
	if f.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", f)
		return FormatJSON
	}
	return f
}

// Writer serializes unit reports to an output stream.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a Writer for output, which defaults to os.Stdout when nil.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: orJSON(format), output: output}
}

// NewFileWriterOrStdout creates a Writer that outputs to path in the given format.
// A blank path, or one that cannot be created, writes to stdout instead.
func NewFileWriterOrStdout(format Format, path string) Serializer {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewWriter(format, os.Stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create output file, writing to stdout", "error", err, "path", path)
		return NewWriter(format, os.Stdout)
	}

	w := NewWriter(format, file)
	w.closer = file
	return w
}

// Close releases the output file, if any. Safe to call more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes v in the configured format. The context is only checked
// before writing; file and stdout writes are not interruptible.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("serialize canceled: %w", err)
	}

	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	case FormatTable:
		if tab, ok := v.(Tabular); ok {
			return w.writeRows(tab.Columns(), tab.Rows())
		}
		return w.writeRows([]string{"FIELD", "VALUE"}, flatten(v))
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
	return nil
}

func (w *Writer) writeRows(columns []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w.output, emptyTable)
		return err
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// flatten renders v as sorted key/value rows. Struct fields are keyed by
// their JSON name when tagged, slice elements by index.
func flatten(v any) [][]string {
	flat := make(map[string]string)
	walk(flat, reflect.ValueOf(v), "")

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, flat[k]})
	}
	return rows
}

func walk(out map[string]string, val reflect.Value, key string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if key != "" {
				out[key] = "<nil>"
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // scalars are handled by default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := range val.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name, tagged := fieldName(field)
			if name == "-" {
				continue
			}
			if field.Anonymous && !tagged {
				walk(out, val.Field(i), key)
				continue
			}
			walk(out, val.Field(i), join(key, name))
		}
	case reflect.Map:
		for _, k := range val.MapKeys() {
			walk(out, val.MapIndex(k), join(key, fmt.Sprint(k.Interface())))
		}
	case reflect.Slice, reflect.Array:
		for i := range val.Len() {
			walk(out, val.Index(i), join(key, fmt.Sprintf("[%d]", i)))
		}
	default:
		if key == "" {
			key = scalarKey
		}
		out[key] = fmt.Sprint(val.Interface())
	}
}

// fieldName returns the JSON key for f and whether the tag named it.
func fieldName(f reflect.StructField) (string, bool) {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag != "" {
		return tag, true
	}
	return f.Name, false
}

func join(prefix, suffix string) string {
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	default:
		return prefix + "." + suffix
	}
}
