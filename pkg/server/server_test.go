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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sysunit/pkg/collector"
	"github.com/NVIDIA/sysunit/pkg/collector/systemd"
	"github.com/NVIDIA/sysunit/pkg/errors"
	"github.com/NVIDIA/sysunit/pkg/journal"
	"github.com/NVIDIA/sysunit/pkg/report"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

type fakeLister struct {
	entries []systemd.Entry
	err     error
}

func (f *fakeLister) ListUnitFiles(_ context.Context, patterns []string) ([]systemd.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(patterns) == 0 {
		return f.entries, nil
	}
	var out []systemd.Entry
	for _, e := range f.entries {
		for _, p := range patterns {
			if ok, _ := path.Match(p, e.Name); ok {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

type fakeRunner struct {
	out string
}

func (r fakeRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return []byte(r.out), nil
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *fakeLister) {
	t.Helper()
	dir := t.TempDir()
	sshd := filepath.Join(dir, "sshd.service")
	require.NoError(t, os.WriteFile(sshd, []byte("[Unit]\nDescription=OpenSSH server daemon\n"), 0o600))

	lister := &fakeLister{entries: []systemd.Entry{
		{Name: "sshd.service", Path: sshd, RawState: `"enabled"`},
		{Name: "fstrim.timer", Path: filepath.Join(dir, "fstrim.timer"), RawState: `"static"`},
		{Name: "odd.service", Path: filepath.Join(dir, "odd.service"), RawState: `"unknown"`},
	}}

	c := &collector.Collector{
		Lister: lister,
		UnitOptions: []unit.Option{
			unit.WithJournalReader(journal.NewReader(journal.WithRunner(fakeRunner{out: "sshd[1]: Server listening\n"}))),
		},
	}

	cfg := NewConfig()
	cfg.Version = "test"
	all := append([]Option{WithConfig(cfg), WithSource(c)}, opts...)
	return New(all...), lister
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.httpServer)
	assert.NotNil(t, s.rateLimiter)
	assert.Equal(t, "127.0.0.1:8080", s.httpServer.Addr)
}

func TestNewConfig_Env(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "7")

	cfg := NewConfig()
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "7s", cfg.ShutdownTimeout.String())
}

func TestHealthAndReady(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = get(t, s, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s.setReady(true)
	w = get(t, s, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "test", body.Version)

	bare := New()
	bare.setReady(true)
	w = get(t, bare, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no unit source configured", body.Reason)
}

func TestDefaultRoute(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp["version"])
	assert.Contains(t, resp["routes"], "GET /v1/units")

	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}

func TestListUnits(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/v1/units?pattern=*.service")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DefaultAPIVersion, w.Header().Get("X-API-Version"))
	_, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	assert.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, report.KindUnitList, rep.Kind)
	require.Len(t, rep.Units, 1)
	assert.Equal(t, "sshd.service", rep.Units[0].Name)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, errors.ErrCodeUnrecognizedUnitState, rep.Skipped[0].Code)
}

func TestListUnits_BusError(t *testing.T) {
	s, lister := newTestServer(t)
	lister.err = errors.New(errors.ErrCodeUnavailable, "bus gone")

	w := get(t, s, "/v1/units")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(errors.ErrCodeUnavailable), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestGetUnit(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   errors.ErrorCode
	}{
		{"found", "/v1/units/sshd.service", http.StatusOK, ""},
		{"not found", "/v1/units/cron.service", http.StatusNotFound, errors.ErrCodeNotFound},
		{"glob rejected", "/v1/units/*.service", http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"unknown suffix", "/v1/units/readme.txt", http.StatusUnprocessableEntity, errors.ErrCodeUnrecognizedUnitType},
		{"undecodable state", "/v1/units/odd.service", http.StatusUnprocessableEntity, errors.ErrCodeUnrecognizedUnitState},
		{"bad journal flag", "/v1/units/sshd.service?journal=maybe", http.StatusBadRequest, errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, string(tt.wantCode), decodeError(t, w).Code)
			}
		})
	}
}

func TestGetUnit_EscapedName(t *testing.T) {
	s, lister := newTestServer(t)
	const name = `dev-disk-by\x2duuid-1234.swap`
	lister.entries = append(lister.entries, systemd.Entry{
		Name:     name,
		Path:     "/run/systemd/generator/" + name,
		RawState: `"generated"`,
	})

	w := get(t, s, "/v1/units/"+url.PathEscape(name))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var d collector.Description
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, name, d.Unit.Name)
	assert.Equal(t, unit.StateGenerated, d.Unit.State)
	assert.Equal(t, unit.TypeSwap, d.Unit.Type)

	w = get(t, s, "/v1/units/"+url.PathEscape(`home\x2duser.mount`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLiteralPattern(t *testing.T) {
	assert.Equal(t, "sshd.service", literalPattern("sshd.service"))
	assert.Equal(t, `home\\x2duser.mount`, literalPattern(`home\x2duser.mount`))
}

func TestGetUnit_Description(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/v1/units/sshd.service?journal=true")
	require.Equal(t, http.StatusOK, w.Code)

	var d collector.Description
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "Service", d.Title)
	assert.Equal(t, "OpenSSH server daemon", d.Description)
	assert.Contains(t, d.Info, "[Unit]")
	assert.Contains(t, d.Journal, "Server listening")
}

func TestUnitJournal(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/v1/units/sshd.service/journal")
	require.Equal(t, http.StatusOK, w.Code)

	var resp JournalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sshd.service", resp.Unit)
	assert.Equal(t, "sshd[1]: Server listening\n", resp.Journal)
}

func TestNoSource(t *testing.T) {
	s := New()

	w := get(t, s, "/v1/units")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, string(errors.ErrCodeUnavailable), decodeError(t, w).Code)
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	s, _ := newTestServer(t, WithConfig(cfg))

	w1 := get(t, s, "/v1/units")
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := get(t, s, "/v1/units")
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Equal(t, "1", w2.Header().Get("Retry-After"))
	assert.Equal(t, string(errors.ErrCodeRateLimitExceeded), decodeError(t, w2).Code)

	// system endpoints are not rate limited
	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	get(t, s, "/v1/units")
	get(t, s, "/v1/units/sshd.service")

	w := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sysunit_http_requests_total")
	assert.Contains(t, w.Body.String(), `route="GET /v1/units"`)
	assert.Contains(t, w.Body.String(), `sysunit_http_unit_lookups_total{result="found"}`)
}

func TestStartAndShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 0
	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	assert.NoError(t, <-done)

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.False(t, s.ready)
}
