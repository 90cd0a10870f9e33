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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysunit/pkg/errors"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "info",
		EnableShellCompletion: true,
		Usage:                 "Print the definition text of a unit file",
		ArgsUsage:             "<unit-file-path>",
		Description: `Print the full text of a unit definition file. Reading is best-effort:
a missing or unreadable file prints nothing.

With --description only the Description= value is printed, and the command
fails if the file has none.

Examples:
  sysunit info /usr/lib/systemd/system/sshd.service
  sysunit info --description /etc/systemd/system/backup.timer`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Print only the Description= value",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New(errors.ErrCodeInvalidRequest, "unit file path is required")
			}

			if _, err := unit.ParseType(path); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			text := newFactory(factoryOptions(cmd, cfg)...).CreateInfoReader().Read(ctx, path)

			if !cmd.Bool("description") {
				fmt.Fprint(stdout(cmd), text)
				return nil
			}

			desc, ok := unit.Description(text)
			if !ok {
				return errors.NewWithContext(errors.ErrCodeNotFound, "unit has no description",
					map[string]any{"path": path})
			}
			fmt.Fprintln(stdout(cmd), desc)
			return nil
		},
	}
}
