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
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/sysunit/pkg/defaults"
	"github.com/NVIDIA/sysunit/pkg/unit"
	"github.com/NVIDIA/sysunit/pkg/unitfile"
)

// DescribeOptions controls a fan-out retrieval.
type DescribeOptions struct {
	// Concurrency is the number of units retrieved in parallel.
	// Zero means defaults.DescribeConcurrency.
	Concurrency int

	// IncludeInfo keeps the full definition text in the result.
	IncludeInfo bool

	// IncludeJournal queries the journal of every unit.
	IncludeJournal bool

	// JournalRate limits journal processes started per second.
	// Zero means defaults.JournalSpawnRate.
	JournalRate rate.Limit
}

// Description is the retrieved presentation data for one unit.
type Description struct {
	Unit          *unit.Unit `json:"unit" yaml:"unit"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Documentation []string   `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	WantedBy      []string   `json:"wantedBy,omitempty" yaml:"wantedBy,omitempty"`
	Info          string     `json:"info,omitempty" yaml:"info,omitempty"`
	Journal       string     `json:"journal,omitempty" yaml:"journal,omitempty"`
}

// Describe retrieves definition text and, optionally, the journal of each unit
// in parallel. Results keep the order of units. Retrieval itself never fails;
// an error is returned only when ctx is canceled.
func (c *Collector) Describe(ctx context.Context, units []*unit.Unit, opts DescribeOptions) ([]Description, error) {
	start := time.Now()
	defer func() {
		describeDuration.Observe(time.Since(start).Seconds())
	}()

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaults.DescribeConcurrency
	}
	limit := opts.JournalRate
	if limit <= 0 {
		limit = defaults.JournalSpawnRate
	}

	limiter := rate.NewLimiter(limit, defaults.JournalSpawnBurst)
	out := make([]Description, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range units {
		g.Go(func() error {
			d, err := describe(gctx, u, limiter, opts)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("units described", slog.Int("count", len(units)), slog.Duration("took", time.Since(start)))

	return out, nil
}

func describe(ctx context.Context, u *unit.Unit, limiter *rate.Limiter, opts DescribeOptions) (Description, error) {
	if err := ctx.Err(); err != nil {
		return Description{}, err
	}

	d := Description{
		Unit:  u,
		Title: u.Type.Title(),
	}

	infoStart := time.Now()
	text := u.Info(ctx)
	retrievalDuration.WithLabelValues("info").Observe(time.Since(infoStart).Seconds())

	if desc, ok := unit.Description(text); ok {
		d.Description = desc
	}
	if opts.IncludeInfo {
		d.Info = text
	}

	if text != "" {
		if parsed, err := unitfile.ParseOptions(text); err == nil {
			d.Documentation = unitfile.Lookup(parsed, "Unit", "Documentation")
			d.WantedBy = unitfile.Lookup(parsed, "Install", "WantedBy")
		} else {
			slog.Debug("unit options not parsed", slog.String("unit", u.Name), slog.String("error", err.Error()))
		}
	}

	if opts.IncludeJournal {
		if err := limiter.Wait(ctx); err != nil {
			return Description{}, err
		}
		journalStart := time.Now()
		d.Journal = u.Journal(ctx)
		retrievalDuration.WithLabelValues("journal").Observe(time.Since(journalStart).Seconds())
	}

	return d, nil
}
