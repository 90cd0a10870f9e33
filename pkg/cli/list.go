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

	"github.com/NVIDIA/sysunit/pkg/report"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "Enumerate and classify unit files",
		Description: `List the unit files known to the service manager with their type and
enablement state. Units whose type or state cannot be recognized are
reported under "skipped" and do not fail the command.

Examples:
  sysunit list
  sysunit list --pattern '*.timer' --format table
  sysunit list --user --output units.json --format json`,
		Flags: []cli.Flag{
			patternFlag(),
			userFlag(),
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

			r := report.New(version, report.WithMetadata("manager", managerName(cmd, cfg)))
			r.SetResult(res)

			return writeReport(ctx, outFormat, cmd.String("output"), r)
		},
	}
}

func managerName(cmd *cli.Command, cfg *Config) string {
	user := cfg.User
	if cmd.IsSet("user") {
		user = cmd.Bool("user")
	}
	if user {
		return "user"
	}
	return "system"
}
