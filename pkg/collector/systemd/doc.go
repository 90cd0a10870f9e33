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


// Package systemd talks to the systemd service manager over D-Bus.
//
// It is the bus collaborator of sysunit: it lists unit files and hands out
// the raw UnitFileState property string. It does not interpret either; type
// classification and state decoding live in package unit.
//
// # Usage
//
//	client, err := systemd.Connect(ctx, false)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	entries, err := client.ListUnitFiles(ctx, []string{"*.service", "*.timer"})
//	raw, err := client.UnitFileState(ctx, "sshd.service") // "\"enabled\""
//
// # Data Format
//
// ListUnitFilesByPatterns returns (path, state) pairs. Entry keeps the path,
// derives the unit name from its base name, and re-quotes the state so it has
// the same shape as a property read:
//
//	{Name: "sshd.service", Path: "/usr/lib/systemd/system/sshd.service", RawState: "\"enabled\""}
//
// # Testing
//
// Conn is satisfied by *dbus.Conn; tests supply a stub implementation so no
// running bus is required.
package systemd
