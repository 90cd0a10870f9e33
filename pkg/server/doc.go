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


// Package server exposes unit enumeration and retrieval as a read-only
// HTTP API.
//
// # Architecture
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Prometheus instrumentation and a /metrics endpoint
//   - Graceful shutdown
//
// The server binds to loopback by default. Unit definitions and journals
// can contain sensitive data; bind elsewhere only behind access control.
//
// # Usage
//
//	c := &collector.Collector{Lister: bus, States: bus}
//	s := server.New(server.WithConfig(cfg), server.WithSource(c))
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//
// # API Endpoints
//
// GET /v1/units - Enumerate and classify units
//
//	Query parameters:
//	  - pattern: unit file name glob, may be repeated
//
//	  curl "http://127.0.0.1:8080/v1/units?pattern=*.timer"
//
// GET /v1/units/{name} - Describe one unit, including its definition text
//
//	Query parameters:
//	  - journal: true to include the current boot's journal
//
// GET /v1/units/{name}/journal - Current boot's journal of one unit
//
// GET /health - Liveness, always 200
//
// GET /ready - 200 while serving, 503 before Start and during shutdown
//
// GET /metrics - Prometheus metrics
//
// # Errors
//
// Failures return an ErrorResponse with the error code, message, request ID
// and a retryable hint. Unknown units are 404, names without a recognized
// unit suffix or undecodable states are 422, an unreachable service manager
// is 503 and rate limited requests are 429 with Retry-After.
package server
