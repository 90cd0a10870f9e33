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

// Package collector enumerates units and retrieves their presentation data.
//
// # Overview
//
// The collector sits between the service manager bus and package unit. It
// takes listed unit files, classifies each one, and records the ones it cannot
// classify instead of failing the batch:
//
//	c := &collector.Collector{Lister: bus, States: bus}
//	res, err := c.List(ctx, []string{"*.service"})
//	for _, s := range res.Skipped {
//	    slog.Warn("unit skipped", "unit", s.Name, "code", s.Code)
//	}
//
// Only context cancellation and listing failures abort an enumeration. A unit
// whose suffix or state is unrecognized ends up in Result.Skipped with its
// error code (UNRECOGNIZED_UNIT_TYPE, UNRECOGNIZED_UNIT_STATE, ...).
//
// # Fan-out Retrieval
//
// Describe reads definition text and journals for many units in parallel
// using errgroup with a concurrency limit. Journal queries spawn a process
// each, so their start rate is bounded by a token bucket:
//
//	descs, err := c.Describe(ctx, res.Units, collector.DescribeOptions{
//	    Concurrency:    8,
//	    IncludeJournal: true,
//	})
//
// Retrieval degrades instead of failing (empty text, placeholder journal), so
// Describe returns an error only when ctx is canceled.
//
// # Factory Pattern
//
// The Factory interface abstracts creation of the bus connection and readers:
//
//	type Factory interface {
//	    CreateBus(ctx context.Context) (Bus, error)
//	    CreateInfoReader() *unitfile.Reader
//	    CreateJournalReader() *journal.Reader
//	}
//
// DefaultFactory wires the real D-Bus connection (collector/systemd), the
// file system and journalctl.
//
// # Metrics
//
// Classified and skipped units, per-unit retrieval latency and batch describe
// latency are exported through the default Prometheus registry.
package collector
