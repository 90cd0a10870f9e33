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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	unitsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysunit_units_classified_total",
			Help: "Total number of units classified, by unit type",
		},
		[]string{"type"},
	)

	unitsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysunit_units_skipped_total",
			Help: "Total number of units skipped during enumeration, by error code",
		},
		[]string{"code"},
	)

	retrievalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sysunit_retrieval_duration_seconds",
			Help:    "Time taken to retrieve unit text",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15},
		},
		[]string{"kind"}, // info or journal
	)

	describeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sysunit_describe_duration_seconds",
			Help:    "Time taken to describe a batch of units",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 120},
		},
	)
)
