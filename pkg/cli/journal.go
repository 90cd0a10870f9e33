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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysunit/pkg/errors"
)

func journalCmd() *cli.Command {
	return &cli.Command{
		Name:                  "journal",
		EnableShellCompletion: true,
		Usage:                 "Print the current boot's journal of a unit",
		ArgsUsage:             "<unit-name>",
		Description: `Print the journal entries of a unit for the current boot, newest first.
If the journal cannot be read, a one-line notice is printed instead.

Examples:
  sysunit journal sshd.service
  sysunit journal --lines 50 --timeout 5s docker.service`,
		Flags: []cli.Flag{
			linesFlag(),
			timeoutFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			unitName := cmd.Args().First()
			if unitName == "" {
				return errors.New(errors.ErrCodeInvalidRequest, "unit name is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			text := newFactory(factoryOptions(cmd, cfg)...).CreateJournalReader().Read(ctx, unitName)

			out := stdout(cmd)
			fmt.Fprint(out, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
