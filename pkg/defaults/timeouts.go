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

package defaults

import "time"

// Bus timeouts for service manager calls.
const (
	// BusCallTimeout bounds a single property or listing call on the system bus.
	BusCallTimeout = 10 * time.Second

	// BusConnectTimeout bounds establishing the bus connection.
	BusConnectTimeout = 5 * time.Second
)

// Retrieval timeouts and limits for on-demand unit text.
const (
	// JournalTimeout is the default timeout for a single journal query process.
	// Callers may pass a shorter deadline through the context.
	JournalTimeout = 15 * time.Second

	// JournalSpawnRate is the maximum number of journal processes started per second
	// during a fan-out retrieval.
	JournalSpawnRate = 20

	// JournalSpawnBurst is the burst allowance for JournalSpawnRate.
	JournalSpawnBurst = 5

	// UnitFileMaxSize is the largest unit definition file read into memory.
	UnitFileMaxSize = 1 << 20
)

// Collector limits for enumeration and fan-out.
const (
	// CollectorTimeout is the default timeout for a full enumeration.
	CollectorTimeout = 30 * time.Second

	// DescribeTimeout is the default timeout for a fan-out retrieval over many units.
	DescribeTimeout = 2 * time.Minute

	// DescribeConcurrency is the default number of units retrieved in parallel.
	DescribeConcurrency = 8
)

// Server timeouts and limits for the read-only HTTP API.
const (
	// ServerReadTimeout bounds reading an entire request.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout bounds writing a response. It exceeds JournalTimeout
	// so a slow journal query still produces a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is how long keep-alive connections stay open.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout bounds graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerRateLimit is the default number of API requests allowed per second.
	ServerRateLimit = 20

	// ServerRateLimitBurst is the burst allowance for ServerRateLimit.
	ServerRateLimitBurst = 40
)
