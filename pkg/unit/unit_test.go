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

package unit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sysunit/pkg/errors"
	"github.com/NVIDIA/sysunit/pkg/journal"
)

type recordingReader struct {
	text  string
	calls []string
}

func (r *recordingReader) Read(_ context.Context, key string) string {
	r.calls = append(r.calls, key)
	return r.text
}

func TestNewFromBus(t *testing.T) {
	u, err := NewFromBus("sshd.service", "/usr/lib/systemd/system/sshd.service", `variant string:"enabled"`)
	require.NoError(t, err)

	assert.Equal(t, "sshd.service", u.Name)
	assert.Equal(t, "/usr/lib/systemd/system/sshd.service", u.Path)
	assert.Equal(t, StateEnabled, u.State)
	assert.Equal(t, TypeService, u.Type)
}

func TestNewFromBus_Failures(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rawState string
		wantCode errors.ErrorCode
	}{
		{
			name:     "unknown type",
			path:     "/etc/systemd/system/foo.conf",
			rawState: `"enabled"`,
			wantCode: errors.ErrCodeUnrecognizedUnitType,
		},
		{
			name:     "unknown state",
			path:     "/etc/systemd/system/foo.service",
			rawState: `"alias"`,
			wantCode: errors.ErrCodeUnrecognizedUnitState,
		},
		{
			name:     "type checked first",
			path:     "/etc/systemd/system/foo",
			rawState: ``,
			wantCode: errors.ErrCodeUnrecognizedUnitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewFromBus("foo", tt.path, tt.rawState)
			require.Error(t, err)
			assert.Nil(t, u)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestUnit_DelegatesRetrieval(t *testing.T) {
	info := &recordingReader{text: "[Unit]\nDescription=OpenSSH server daemon\n"}
	logs := &recordingReader{text: "newest\nolder\n"}

	u := New("sshd.service", "/usr/lib/systemd/system/sshd.service", StateEnabled, TypeService,
		WithInfoReader(info), WithJournalReader(logs))

	assert.Equal(t, info.text, u.Info(context.Background()))
	assert.Equal(t, logs.text, u.Journal(context.Background()))

	desc, ok := u.Description(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "OpenSSH server daemon", desc)

	assert.Equal(t, []string{u.Path, u.Path}, info.calls, "info must be read by path on every call")
	assert.Equal(t, []string{u.Name}, logs.calls, "journal must be queried by name")
}

func TestUnit_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.timer")
	require.NoError(t, os.WriteFile(path, []byte("[Unit]\nDescription=Nightly backup\n"), 0o600))

	logs := &recordingReader{text: "entry\n"}
	u := New("backup.timer", path, StateEnabled, TypeTimer, WithJournalReader(logs))

	assert.Equal(t, u.Info(context.Background()), u.Info(context.Background()))
	assert.Equal(t, u.Journal(context.Background()), u.Journal(context.Background()))
}

func TestUnit_DefaultReadersDegrade(t *testing.T) {
	u := New("ghost.service", filepath.Join(t.TempDir(), "ghost.service"), StateDisabled, TypeService,
		WithJournalReader(journal.NewReader(journal.WithCommand("sysunit-test-no-such-journal-tool"))))

	assert.Empty(t, u.Info(context.Background()))
	assert.Equal(t, "Unable to read the journal entry for ghost.service.", u.Journal(context.Background()))

	_, ok := u.Description(context.Background())
	assert.False(t, ok)
}

func TestUnit_Literal(t *testing.T) {
	dir := t.TempDir()
	sshd := filepath.Join(dir, "sshd.service")
	require.NoError(t, os.WriteFile(sshd, []byte("[Unit]\nDescription=OpenSSH server daemon\n"), 0o600))

	u := &Unit{Name: "sshd.service", Path: sshd, State: StateEnabled, Type: TypeService}
	assert.Contains(t, u.Info(t.Context()), "[Unit]")

	desc, ok := u.Description(t.Context())
	assert.True(t, ok)
	assert.Equal(t, "OpenSSH server daemon", desc)

	missing := &Unit{Name: "ghost.service", Path: filepath.Join(dir, "ghost.service")}
	assert.NotPanics(t, func() {
		assert.Empty(t, missing.Info(t.Context()))
		_ = missing.Journal(t.Context())
	})
}

func TestUnit_Refresh(t *testing.T) {
	u := New("sshd.service", "/usr/lib/systemd/system/sshd.service", StateEnabled, TypeService)

	require.NoError(t, u.Refresh(`variant string:"masked"`))
	assert.Equal(t, StateMasked, u.State)

	err := u.Refresh(`variant string:"alias"`)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnrecognizedUnitState))
	assert.Equal(t, StateMasked, u.State, "failed refresh keeps previous state")
}
