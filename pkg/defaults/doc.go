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

// Package defaults provides centralized configuration constants for sysunit.
//
// This package defines timeout values and concurrency limits used across the
// codebase. Centralizing these values ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Bus timeouts: For service manager calls over the system bus
//   - Retrieval timeouts: For journal queries and unit file reads
//   - Collector timeouts: For enumeration and fan-out retrieval
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/sysunit/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.JournalTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Bus calls: 10s, respects parent context deadline
//   - Journal queries: 15s per process, the only unbounded external call
//   - Fan-out retrieval: 2m overall, 8 units in parallel
package defaults
