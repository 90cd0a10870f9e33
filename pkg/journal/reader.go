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
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/NVIDIA/sysunit/pkg/defaults"
	sderrors "github.com/NVIDIA/sysunit/pkg/errors"
)

// DefaultCommand is the journal query tool invoked when none is configured.
const DefaultCommand = "journalctl"

// Runner starts an external command and returns its standard output.
// Implementations must honor ctx cancellation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// Run executes name with args and captures standard output. Nothing is piped
// to standard input.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Option configures a Reader.
type Option func(*Reader)

// Reader retrieves a one-shot, newest-first snapshot of a unit's journal for
// the current boot.
type Reader struct {
	runner  Runner
	command string
	lines   int
	timeout time.Duration
}

// WithRunner replaces the process runner, typically with a fake in tests.
func WithRunner(r Runner) Option {
	return func(jr *Reader) {
		jr.runner = r
	}
}

// WithCommand sets the journal query tool. Default is DefaultCommand.
func WithCommand(command string) Option {
	return func(jr *Reader) {
		jr.command = command
	}
}

// WithLines limits the number of entries returned. Zero means no limit.
func WithLines(n int) Option {
	return func(jr *Reader) {
		jr.lines = n
	}
}

// WithTimeout bounds a single query. Zero disables the internal timeout and
// leaves cancellation to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(jr *Reader) {
		jr.timeout = d
	}
}

// NewReader creates a journal reader with the provided options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		runner:  ExecRunner{},
		command: DefaultCommand,
		timeout: defaults.JournalTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FallbackMessage is the text returned in place of a journal that could not be read.
func FallbackMessage(name string) string {
	return fmt.Sprintf("Unable to read the journal entry for %s.", name)
}

// Args returns the query arguments for the given unit: this boot only,
// reverse chronological, filtered by unit name.
func (r *Reader) Args(name string) []string {
	args := []string{"--boot", "--reverse", "--no-pager"}
	if r.lines > 0 {
		args = append(args, "--lines", strconv.Itoa(r.lines))
	}
	return append(args, "--unit", name)
}

// Read returns the journal text for the named unit. Any failure degrades to
// FallbackMessage(name); the cause is logged at debug level.
func (r *Reader) Read(ctx context.Context, name string) string {
	text, err := r.Query(ctx, name)
	if err != nil {
		slog.Debug("journal not readable", slog.String("unit", name), slog.String("error", err.Error()))
		return FallbackMessage(name)
	}
	return text
}

// Query runs the journal tool for the named unit and returns its output.
// A non-zero exit with captured output is not a failure: the tool reports
// "no entries" that way. Spawn failures, timeouts and non UTF-8 output are.
func (r *Reader) Query(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", sderrors.New(sderrors.ErrCodeInvalidRequest, "unit name cannot be empty")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.runner.Run(ctx, r.command, r.Args(name)...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", sderrors.WrapWithContext(sderrors.ErrCodeTimeout, "journal query did not complete",
			ctxErr, map[string]any{"command": r.command, "unit": name})
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", sderrors.WrapWithContext(sderrors.ErrCodeUnavailable, "failed to run journal query",
				err, map[string]any{"command": r.command, "unit": name})
		}
		slog.Debug("journal query exited with error", slog.String("unit", name), slog.Int("code", exitErr.ExitCode()))
	}

	if !utf8.Valid(out) {
		return "", sderrors.NewWithContext(sderrors.ErrCodeInternal, "journal output is not valid UTF-8",
			map[string]any{"command": r.command, "unit": name})
	}

	return string(out), nil
}
