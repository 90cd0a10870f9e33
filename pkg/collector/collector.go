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

package collector

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/NVIDIA/sysunit/pkg/collector/systemd"
	"github.com/NVIDIA/sysunit/pkg/errors"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

// Lister lists unit files known to the service manager.
type Lister interface {
	ListUnitFiles(ctx context.Context, patterns []string) ([]systemd.Entry, error)
}

// StateSource returns the raw enablement state message for a unit.
type StateSource interface {
	UnitFileState(ctx context.Context, name string) (string, error)
}

// Skipped records a unit that could not be classified. The rest of the
// enumeration is unaffected.
type Skipped struct {
	Name   string           `json:"name" yaml:"name"`
	Path   string           `json:"path" yaml:"path"`
	Code   errors.ErrorCode `json:"code" yaml:"code"`
	Reason string           `json:"reason" yaml:"reason"`
}

// Result is the outcome of an enumeration.
type Result struct {
	Units   []*unit.Unit `json:"units" yaml:"units"`
	Skipped []Skipped    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Collector turns listed unit files into classified units.
type Collector struct {
	// Lister supplies unit files for List. Optional when Collect is used directly.
	Lister Lister

	// States is consulted for entries that carry no raw state. Optional.
	States StateSource

	// UnitOptions are applied to every constructed unit, typically to share readers.
	UnitOptions []unit.Option
}

// List enumerates unit files matching patterns and classifies them.
func (c *Collector) List(ctx context.Context, patterns []string) (*Result, error) {
	if c.Lister == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "collector has no unit lister")
	}

	slog.Info("listing units", slog.Any("patterns", patterns))

	entries, err := c.Lister.ListUnitFiles(ctx, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	return c.Collect(ctx, entries)
}

// Collect classifies each entry. A unit whose type or state is unrecognized,
// or whose state cannot be fetched, is recorded in Result.Skipped; only
// context cancellation aborts the batch.
func (c *Collector) Collect(ctx context.Context, entries []systemd.Entry) (*Result, error) {
	res := &Result{
		Units:   make([]*unit.Unit, 0, len(entries)),
		Skipped: make([]Skipped, 0),
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := e.Name
		if name == "" {
			name = filepath.Base(e.Path)
		}

		raw := e.RawState
		if raw == "" && c.States != nil {
			var err error
			raw, err = c.States.UnitFileState(ctx, name)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				res.skip(name, e.Path, err)
				continue
			}
		}

		u, err := unit.NewFromBus(name, e.Path, raw, c.UnitOptions...)
		if err != nil {
			res.skip(name, e.Path, err)
			continue
		}

		unitsClassified.WithLabelValues(u.Type.String()).Inc()
		res.Units = append(res.Units, u)
	}

	slog.Debug("units collected",
		slog.Int("units", len(res.Units)),
		slog.Int("skipped", len(res.Skipped)))

	return res, nil
}

func (r *Result) skip(name, path string, err error) {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	slog.Warn("skipping unit",
		slog.String("unit", name),
		slog.String("path", path),
		slog.String("code", string(code)),
		slog.String("error", err.Error()))

	unitsSkipped.WithLabelValues(string(code)).Inc()
	r.Skipped = append(r.Skipped, Skipped{
		Name:   name,
		Path:   path,
		Code:   code,
		Reason: err.Error(),
	})
}
