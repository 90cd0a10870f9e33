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

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/sysunit/pkg/collector"
	"github.com/NVIDIA/sysunit/pkg/defaults"
	"github.com/NVIDIA/sysunit/pkg/report"
)

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "describe",
		EnableShellCompletion: true,
		Usage:                 "Enumerate units and retrieve their descriptions and journals",
		Description: `List unit files like "list", then read every unit's definition to extract
its Description=, Documentation= and WantedBy= values. With --journal the
current boot's journal of each unit is included as well.

Retrieval runs in parallel; journal queries are rate limited.

Examples:
  sysunit describe --pattern '*.service' --format table
  sysunit describe --journal --lines 20 --concurrency 4 -o describe.yaml`,
		Flags: []cli.Flag{
			patternFlag(),
			userFlag(),
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Number of units retrieved in parallel",
				Value: defaults.DescribeConcurrency,
			},
			&cli.BoolFlag{
				Name:  "journal",
				Usage: "Include each unit's journal",
			},
			&cli.BoolFlag{
				Name:  "info",
				Usage: "Include the full definition text of each unit",
			},
			&cli.FloatFlag{
				Name:  "journal-rate",
				Usage: "Maximum journal queries started per second",
				Value: defaults.JournalSpawnRate,
			},
			linesFlag(),
			timeoutFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			factory := newFactory(factoryOptions(cmd, cfg)...)
			res, err := listUnits(ctx, factory, patterns(cmd, cfg))
			if err != nil {
				return err
			}

			concurrency := int(cmd.Int("concurrency"))
			if !cmd.IsSet("concurrency") && cfg.Concurrency > 0 {
				concurrency = cfg.Concurrency
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.DescribeTimeout)
			defer cancel()

			var c collector.Collector
			ds, err := c.Describe(ctx, res.Units, collector.DescribeOptions{
				Concurrency:    concurrency,
				IncludeInfo:    cmd.Bool("info"),
				IncludeJournal: cmd.Bool("journal"),
				JournalRate:    rate.Limit(cmd.Float("journal-rate")),
			})
			if err != nil {
				return err
			}

			r := report.New(version, report.WithMetadata("manager", managerName(cmd, cfg)))
			r.SetResult(res)
			r.SetDescriptions(ds)

			return writeReport(ctx, outFormat, cmd.String("output"), r)
		},
	}
}
