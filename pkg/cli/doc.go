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


// Package cli implements the sysunit command line interface.
//
// # Commands
//
// list - Enumerate and classify unit files:
//
//	sysunit list [--pattern '*.service'] [--user] [--format yaml|json|table] [--output file]
//
// Every unit file known to the service manager is classified by suffix and
// its enablement state decoded. Units that cannot be classified are listed
// under "skipped" with an error code; they never fail the command.
//
// info - Print a unit definition:
//
//	sysunit info [--description] /usr/lib/systemd/system/sshd.service
//
// journal - Print the current boot's journal of a unit, newest first:
//
//	sysunit journal [--lines 50] [--timeout 5s] sshd.service
//
// describe - list plus parallel retrieval of Description=, Documentation=,
// WantedBy= and optionally the journal of every unit:
//
//	sysunit describe [--journal] [--info] [--concurrency 8] [--journal-rate 20]
//
// serve - Read-only HTTP API over the same operations:
//
//	sysunit serve [--address 127.0.0.1] [--port 8080] [--rate-limit 20]
//
// # Global Flags
//
//	--log-level         debug, info, warn, error (default: info)
//	--config, -c        YAML or JSON file with default patterns and limits
//	--metrics-textfile  write Prometheus metrics to this file on exit
//
// # Config File
//
//	patterns: ["*.service", "*.timer"]
//	user: false
//	concurrency: 4
//	journalLines: 100
//	journalTimeout: 10s
//	journalCommand: journalctl
//
// Flags always override config values.
//
// # Environment Variables
//
//	SYSUNIT_LOG_LEVEL, LOG_LEVEL  log level
//	SYSUNIT_CONFIG                config file path
//	SYSUNIT_OUTPUT                output file path
//	SYSUNIT_FORMAT                output format
//	SYSUNIT_USER                  query the per-user service manager
//	SYSUNIT_ADDRESS, SYSUNIT_PORT serve listen address and port
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, bus unavailable)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/sysunit/pkg/cli.version=1.0.0'"
package cli
