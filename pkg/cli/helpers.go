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
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysunit/pkg/collector"
	"github.com/NVIDIA/sysunit/pkg/errors"
	"github.com/NVIDIA/sysunit/pkg/serializer"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
		Sources: cli.EnvVars("SYSUNIT_OUTPUT"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
		Sources: cli.EnvVars("SYSUNIT_FORMAT"),
	}
}

func patternFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "pattern",
		Aliases: []string{"p"},
		Usage:   "Unit file name glob to match, can be repeated (default: all unit files)",
	}
}

func userFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "user",
		Usage:   "Query the per-user service manager instead of the system one",
		Sources: cli.EnvVars("SYSUNIT_USER"),
	}
}

func linesFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "lines",
		Aliases: []string{"n"},
		Usage:   "Maximum journal entries per unit (0 for no limit)",
	}
}

func timeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Timeout for a single journal query",
	}
}

// newFactory creates the collector dependencies; replaced in tests.
var newFactory = func(opts ...collector.FactoryOption) collector.Factory {
	return collector.NewDefaultFactory(opts...)
}

// Config holds defaults read from the --config file. Command line flags
// take precedence over every field.
type Config struct {
	Patterns       []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	User           bool     `json:"user,omitempty" yaml:"user,omitempty"`
	Concurrency    int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	JournalLines   int      `json:"journalLines,omitempty" yaml:"journalLines,omitempty"`
	JournalTimeout string   `json:"journalTimeout,omitempty" yaml:"journalTimeout,omitempty"`
	JournalCommand string   `json:"journalCommand,omitempty" yaml:"journalCommand,omitempty"`
}

// loadConfig reads the --config file, or returns an empty Config when none is set.
func loadConfig(cmd *cli.Command) (*Config, error) {
	path := cmd.String("config")
	if path == "" {
		return &Config{}, nil
	}

	cfg, err := serializer.FromFile[Config](path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to load config", err)
	}

	if cfg.JournalTimeout != "" {
		if _, err := time.ParseDuration(cfg.JournalTimeout); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid journalTimeout in config", err,
				map[string]any{"path": path, "value": cfg.JournalTimeout})
		}
	}

	slog.Debug("config loaded", "path", path)
	return cfg, nil
}

// factoryOptions merges flags over config values.
func factoryOptions(cmd *cli.Command, cfg *Config) []collector.FactoryOption {
	opts := []collector.FactoryOption{
		collector.WithUserManager(cfg.User),
	}
	if cmd.IsSet("user") {
		opts = append(opts, collector.WithUserManager(cmd.Bool("user")))
	}

	if cfg.JournalLines > 0 {
		opts = append(opts, collector.WithJournalLines(cfg.JournalLines))
	}
	if cmd.IsSet("lines") {
		opts = append(opts, collector.WithJournalLines(int(cmd.Int("lines"))))
	}

	if cfg.JournalTimeout != "" {
		// validated by loadConfig
		d, _ := time.ParseDuration(cfg.JournalTimeout)
		opts = append(opts, collector.WithJournalTimeout(d))
	}
	if cmd.IsSet("timeout") {
		opts = append(opts, collector.WithJournalTimeout(cmd.Duration("timeout")))
	}

	if cfg.JournalCommand != "" {
		opts = append(opts, collector.WithJournalCommand(cfg.JournalCommand))
	}

	return opts
}

// patterns returns the --pattern values, falling back to the config file.
func patterns(cmd *cli.Command, cfg *Config) []string {
	if p := cmd.StringSlice("pattern"); len(p) > 0 {
		return p
	}
	return cfg.Patterns
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", outFormat),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return outFormat, nil
}

// listUnits connects to the service manager and classifies matching unit files.
func listUnits(ctx context.Context, factory collector.Factory, pats []string) (*collector.Result, error) {
	bus, err := factory.CreateBus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer bus.Close()

	c := &collector.Collector{
		Lister: bus,
		States: bus,
		UnitOptions: []unit.Option{
			unit.WithInfoReader(factory.CreateInfoReader()),
			unit.WithJournalReader(factory.CreateJournalReader()),
		},
	}

	return c.List(ctx, pats)
}

func writeReport(ctx context.Context, format serializer.Format, output string, v any) error {
	w := serializer.NewFileWriterOrStdout(format, output)
	defer func() {
		if c, ok := w.(serializer.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close output", "error", err)
			}
		}
	}()

	if err := w.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// stdout returns the writer for plain text command output.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
