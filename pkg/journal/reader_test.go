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

package journal

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sderrors "github.com/NVIDIA/sysunit/pkg/errors"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	mu    sync.Mutex
	out   []byte
	err   error
	delay time.Duration
	calls []call
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: args})
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.out, f.err
}

func TestFallbackMessage(t *testing.T) {
	assert.Equal(t, "Unable to read the journal entry for sshd.service.", FallbackMessage("sshd.service"))
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		unit string
		want []string
	}{
		{
			name: "default",
			unit: "sshd.service",
			want: []string{"--boot", "--reverse", "--no-pager", "--unit", "sshd.service"},
		},
		{
			name: "with line limit",
			opts: []Option{WithLines(50)},
			unit: "cron.timer",
			want: []string{"--boot", "--reverse", "--no-pager", "--lines", "50", "--unit", "cron.timer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewReader(tt.opts...).Args(tt.unit))
		})
	}
}

func TestRead_Success(t *testing.T) {
	runner := &fakeRunner{out: []byte("Oct 17 10:00:01 host sshd[1]: Server listening on :: port 22.\n")}
	r := NewReader(WithRunner(runner))

	got := r.Read(context.Background(), "sshd.service")

	assert.Equal(t, "Oct 17 10:00:01 host sshd[1]: Server listening on :: port 22.\n", got)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, DefaultCommand, runner.calls[0].name)
	assert.Contains(t, runner.calls[0].args, "sshd.service")
}

func TestRead_CustomCommand(t *testing.T) {
	runner := &fakeRunner{out: []byte("ok")}
	r := NewReader(WithRunner(runner), WithCommand("/usr/bin/journalctl"))

	assert.Equal(t, "ok", r.Read(context.Background(), "sshd.service"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/usr/bin/journalctl", runner.calls[0].name)
}

func TestRead_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		unit   string
	}{
		{
			name:   "spawn failure",
			runner: &fakeRunner{err: exec.ErrNotFound},
			unit:   "sshd.service",
		},
		{
			name:   "non UTF-8 output",
			runner: &fakeRunner{out: []byte{0xff, 0xfe, 0xfd}},
			unit:   "sshd.service",
		},
		{
			name:   "empty unit name",
			runner: &fakeRunner{out: []byte("ignored")},
			unit:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(WithRunner(tt.runner))
			assert.Equal(t, FallbackMessage(tt.unit), r.Read(context.Background(), tt.unit))
		})
	}
}

func TestRead_ToolUnavailable(t *testing.T) {
	r := NewReader(WithCommand("sysunit-test-no-such-journal-tool"))

	got := r.Read(context.Background(), "sshd.service")

	assert.Equal(t, "Unable to read the journal entry for sshd.service.", got)
}

func TestQuery_ToolUnavailable(t *testing.T) {
	r := NewReader(WithCommand("sysunit-test-no-such-journal-tool"))

	_, err := r.Query(context.Background(), "sshd.service")

	require.Error(t, err)
	assert.True(t, sderrors.IsCode(err, sderrors.ErrCodeUnavailable))
}

func TestQuery_Timeout(t *testing.T) {
	runner := &fakeRunner{out: []byte("late"), delay: time.Second}
	r := NewReader(WithRunner(runner), WithTimeout(10*time.Millisecond))

	_, err := r.Query(context.Background(), "sshd.service")

	require.Error(t, err)
	assert.True(t, sderrors.IsCode(err, sderrors.ErrCodeTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestQuery_CallerCancellation(t *testing.T) {
	runner := &fakeRunner{out: []byte("late"), delay: time.Second}
	r := NewReader(WithRunner(runner), WithTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Query(ctx, "sshd.service")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, FallbackMessage("sshd.service"), r.Read(ctx, "sshd.service"))
}

func TestQuery_NonZeroExitKeepsOutput(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	exitErr := exec.Command(sh, "-c", "exit 1").Run()
	var ee *exec.ExitError
	require.True(t, errors.As(exitErr, &ee))

	runner := &fakeRunner{out: []byte("-- No entries --\n"), err: exitErr}
	r := NewReader(WithRunner(runner))

	got, err := r.Query(context.Background(), "missing.service")

	require.NoError(t, err)
	assert.Equal(t, "-- No entries --\n", got)
}

func TestRead_Idempotent(t *testing.T) {
	runner := &fakeRunner{out: []byte("line 2\nline 1\n")}
	r := NewReader(WithRunner(runner))

	first := r.Read(context.Background(), "sshd.service")
	second := r.Read(context.Background(), "sshd.service")

	assert.Equal(t, first, second)
	assert.Len(t, runner.calls, 2, "each call must spawn a fresh query")
}
