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

package server

import (
	"net/http"
	"time"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Version   string    `json:"version" yaml:"version"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) health(status, reason string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	}
}

// handleHealth reports liveness. It never touches the service manager.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.health("healthy", ""))
}

// handleReady reports whether unit requests can be served: Start has been
// called, Shutdown has not begun, and a unit source is configured.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	switch {
	case !ready:
		respondJSON(w, http.StatusServiceUnavailable, s.health("not_ready", "server is starting or shutting down"))
	case s.source == nil:
		respondJSON(w, http.StatusServiceUnavailable, s.health("not_ready", "no unit source configured"))
	default:
		respondJSON(w, http.StatusOK, s.health("ready", ""))
	}
}
