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
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/NVIDIA/sysunit/pkg/collector"
	"github.com/NVIDIA/sysunit/pkg/errors"
	"github.com/NVIDIA/sysunit/pkg/report"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

// JournalResponse is the body of GET /v1/units/{name}/journal.
type JournalResponse struct {
	Unit    string `json:"unit"`
	Journal string `json:"journal"`
}

// handleListUnits handles GET /v1/units?pattern=...
func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	if !s.requireSource(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	res, err := s.source.List(ctx, r.URL.Query()["pattern"])
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to list units", nil)
		return
	}

	rep := report.New(s.config.Version)
	rep.SetResult(res)
	respondJSON(w, http.StatusOK, rep)
}

// handleGetUnit handles GET /v1/units/{name}[?journal=true]
func (s *Server) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	if !s.requireSource(w, r) {
		return
	}

	includeJournal := false
	if v := r.URL.Query().Get("journal"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
				"journal must be a boolean", false, map[string]any{"journal": v})
			return
		}
		includeJournal = b
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	u, err := s.findUnit(ctx, r.PathValue("name"))
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to find unit", nil)
		return
	}

	ds, err := s.source.Describe(ctx, []*unit.Unit{u}, collector.DescribeOptions{
		Concurrency:    1,
		IncludeInfo:    true,
		IncludeJournal: includeJournal,
	})
	if err != nil {
		WriteErrorFromErr(w, r, errors.Wrap(errors.ErrCodeTimeout, "unit retrieval did not complete", err), "", nil)
		return
	}

	respondJSON(w, http.StatusOK, ds[0])
}

// handleUnitJournal handles GET /v1/units/{name}/journal
func (s *Server) handleUnitJournal(w http.ResponseWriter, r *http.Request) {
	if !s.requireSource(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	u, err := s.findUnit(ctx, r.PathValue("name"))
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to find unit", nil)
		return
	}

	respondJSON(w, http.StatusOK, JournalResponse{
		Unit:    u.Name,
		Journal: u.Journal(ctx),
	})
}

func (s *Server) requireSource(w http.ResponseWriter, r *http.Request) bool {
	if s.source != nil {
		return true
	}
	WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
		"no unit source configured", true, nil)
	return false
}

// findUnit resolves a unit by exact name. Glob characters are rejected so a
// single lookup cannot enumerate the manager. Backslashes are allowed since
// escaped names such as home\x2duser.mount are common; they are escaped in
// the bus pattern so they match literally.
func (s *Server) findUnit(ctx context.Context, name string) (u *unit.Unit, err error) {
	defer func() {
		result := "found"
		if err != nil {
			result = string(errors.CodeOf(err))
			if result == "" {
				result = string(errors.ErrCodeInternal)
			}
		}
		unitLookups.WithLabelValues(result).Inc()
	}()

	if name == "" || strings.ContainsAny(name, `*?[]/`) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid unit name",
			map[string]any{"unit": name})
	}
	if _, err := unit.ParseType(name); err != nil {
		return nil, err
	}

	res, err := s.source.List(ctx, []string{literalPattern(name)})
	if err != nil {
		return nil, err
	}

	for _, candidate := range res.Units {
		if candidate.Name == name {
			return candidate, nil
		}
	}
	for _, sk := range res.Skipped {
		if sk.Name == name {
			return nil, errors.NewWithContext(sk.Code, sk.Reason, map[string]any{"unit": name})
		}
	}

	return nil, errors.NewWithContext(errors.ErrCodeNotFound, "unit not found",
		map[string]any{"unit": name})
}

// literalPattern escapes the one fnmatch metacharacter a valid unit name
// may contain.
func literalPattern(name string) string {
	return strings.ReplaceAll(name, `\`, `\\`)
}
