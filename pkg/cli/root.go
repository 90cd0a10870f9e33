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

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysunit/pkg/logging"
)

const (
	name           = "sysunit"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute builds the root command and runs it with the process arguments.
// It is called by main.main and exits the process on failure.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Classify service manager units and retrieve their definitions and journals",
		Description: `sysunit enumerates the unit files known to the service manager, classifies
each one by type (service, socket, timer, ...) and enablement state, and
retrieves the unit definition text and the current boot's journal on demand.

  list     - enumerate and classify unit files
  info     - print the definition text of a unit file
  journal  - print the current boot's journal of a unit
  describe - enumerate, then retrieve descriptions and journals in parallel
  serve    - serve the same data over a read-only HTTP API`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("SYSUNIT_LOG_LEVEL", "LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or JSON config file with default patterns and limits",
				Sources: cli.EnvVars("SYSUNIT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "metrics-textfile",
				Usage:   "Write collection metrics in Prometheus text format to this file on exit",
				Sources: cli.EnvVars("SYSUNIT_METRICS_TEXTFILE"),
			},
		},
		Before:        initLogger,
		After:         writeMetrics,
		ShellComplete: commandLister,
		Commands: []*cli.Command{
			listCmd(),
			infoCmd(),
			journalCmd(),
			describeCmd(),
			serveCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
	return ctx, nil
}

func writeMetrics(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("metrics-textfile")
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	slog.Debug("metrics written", "path", path)
	return nil
}

// commandLister prints visible subcommand names for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil || cmd.Root() == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Root().Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}

// exitCode maps an error to the process exit status: 2 for cancellation or
// timeout, 1 otherwise.
func exitCode(err error) int {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return 2
	}
	return 1
}
