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

package systemd

import (
	"context"
	"errors"
	"testing"

	"github.com/coreos/go-systemd/v22/dbus"
	godbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sderrors "github.com/NVIDIA/sysunit/pkg/errors"
)

type stubConn struct {
	states   map[string]string
	files    []dbus.UnitFile
	err      error
	patterns []string
	closed   bool
}

func (s *stubConn) Close() {
	s.closed = true
}

func (s *stubConn) GetUnitPropertyContext(ctx context.Context, unit string, propertyName string) (*dbus.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	state, ok := s.states[unit]
	if !ok {
		return nil, nil
	}
	return &dbus.Property{Name: propertyName, Value: godbus.MakeVariant(state)}, nil
}

func (s *stubConn) ListUnitFilesByPatternsContext(_ context.Context, _ []string, patterns []string) ([]dbus.UnitFile, error) {
	s.patterns = patterns
	if s.err != nil {
		return nil, s.err
	}
	return s.files, nil
}

func TestClient_UnitFileState(t *testing.T) {
	conn := &stubConn{states: map[string]string{"sshd.service": "enabled"}}
	c := NewClient(conn)

	raw, err := c.UnitFileState(context.Background(), "sshd.service")

	require.NoError(t, err)
	assert.Equal(t, `"enabled"`, raw)
}

func TestClient_UnitFileState_Errors(t *testing.T) {
	t.Run("bus error", func(t *testing.T) {
		c := NewClient(&stubConn{err: errors.New("connection reset")})
		_, err := c.UnitFileState(context.Background(), "sshd.service")
		require.Error(t, err)
		assert.True(t, sderrors.IsCode(err, sderrors.ErrCodeUnavailable))
	})

	t.Run("missing property", func(t *testing.T) {
		c := NewClient(&stubConn{states: map[string]string{}})
		_, err := c.UnitFileState(context.Background(), "ghost.service")
		require.Error(t, err)
		assert.True(t, sderrors.IsCode(err, sderrors.ErrCodeNotFound))
	})
}

func TestClient_ListUnitFiles(t *testing.T) {
	conn := &stubConn{files: []dbus.UnitFile{
		{Path: "/usr/lib/systemd/system/sshd.service", Type: "enabled"},
		{Path: "/usr/lib/systemd/system/fstrim.timer", Type: "disabled"},
		{Path: "/run/systemd/transient/session-2.scope", Type: ""},
	}}
	c := NewClient(conn)

	entries, err := c.ListUnitFiles(context.Background(), []string{"*.service", "*.timer"})

	require.NoError(t, err)
	assert.Equal(t, []string{"*.service", "*.timer"}, conn.patterns)
	assert.Equal(t, []Entry{
		{Name: "sshd.service", Path: "/usr/lib/systemd/system/sshd.service", RawState: `"enabled"`},
		{Name: "fstrim.timer", Path: "/usr/lib/systemd/system/fstrim.timer", RawState: `"disabled"`},
		{Name: "session-2.scope", Path: "/run/systemd/transient/session-2.scope"},
	}, entries)
}

func TestClient_ListUnitFiles_Error(t *testing.T) {
	c := NewClient(&stubConn{err: errors.New("access denied")})

	entries, err := c.ListUnitFiles(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, entries)
}

func TestClient_Close(t *testing.T) {
	conn := &stubConn{}
	NewClient(conn).Close()
	assert.True(t, conn.closed)
}

func TestConnect_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, err := Connect(context.Background(), false)
	if err != nil {
		// D-Bus is not available on every build host
		assert.True(t, sderrors.IsCode(err, sderrors.ErrCodeUnavailable))
		t.Logf("systemd unavailable: %v", err)
		return
	}
	defer c.Close()

	entries, err := c.ListUnitFiles(context.Background(), []string{"*.target"})
	if err != nil {
		t.Logf("listing unit files failed: %v", err)
		return
	}
	t.Logf("listed %d target units", len(entries))
}
