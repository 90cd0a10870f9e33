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
	"golang.org/x/time/rate"

	"github.com/NVIDIA/sysunit/pkg/collector"
	"github.com/NVIDIA/sysunit/pkg/defaults"
	"github.com/NVIDIA/sysunit/pkg/server"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve unit listings, descriptions and journals over HTTP",
		Description: `Start a read-only HTTP API backed by one service manager connection.

Endpoints:
  GET /v1/units[?pattern=GLOB]          classified unit list
  GET /v1/units/{name}[?journal=true]   description and definition text
  GET /v1/units/{name}/journal          current boot's journal
  GET /health, /ready, /metrics

The server listens on 127.0.0.1 unless --address is given.

Examples:
  sysunit serve
  sysunit serve --port 9090 --rate-limit 5`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "Listen address",
				Value:   "127.0.0.1",
				Sources: cli.EnvVars("SYSUNIT_ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Listen port (PORT is also honored)",
				Sources: cli.EnvVars("SYSUNIT_PORT"),
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "API requests allowed per second",
				Value: defaults.ServerRateLimit,
			},
			&cli.IntFlag{
				Name:  "rate-limit-burst",
				Usage: "API request burst size",
				Value: defaults.ServerRateLimitBurst,
			},
			userFlag(),
			linesFlag(),
			timeoutFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			srvCfg := serverConfig(cmd)

			factory := newFactory(factoryOptions(cmd, cfg)...)
			bus, err := factory.CreateBus(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to service manager: %w", err)
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

			return server.New(server.WithConfig(srvCfg), server.WithSource(c)).Start(ctx)
		},
	}
}

// serverConfig builds the server configuration from flags over defaults.
func serverConfig(cmd *cli.Command) *server.Config {
	srvCfg := server.NewConfig()
	srvCfg.Name = name
	srvCfg.Version = version
	srvCfg.Address = cmd.String("address")
	if cmd.IsSet("port") {
		srvCfg.Port = int(cmd.Int("port"))
	}
	srvCfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
	srvCfg.RateLimitBurst = int(cmd.Int("rate-limit-burst"))
	return srvCfg
}
