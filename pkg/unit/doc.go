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


// Package unit models service-manager units and the parsing that classifies them.
//
// # Overview
//
// A Unit pairs a name and definition file path with two derived values:
//
//   - Type, taken from the file name suffix (ParseType)
//   - State, the enablement state decoded from the raw bus property (ParseState)
//
// Both parsers are pure and return a *errors.StructuredError with code
// ErrCodeUnrecognizedUnitType or ErrCodeUnrecognizedUnitState on input they do
// not recognize. Callers enumerating many units are expected to skip or flag
// the offending unit rather than abort.
//
// # Retrieval
//
// Definition text and journal history are read on demand and never cached:
//
//	u, err := unit.NewFromBus("sshd.service", "/usr/lib/systemd/system/sshd.service", `"enabled"`)
//	if err != nil {
//	    return err
//	}
//	desc, ok := u.Description(ctx)
//	logs := u.Journal(ctx)
//
// Info returns an empty string when the file cannot be read; Journal returns
// "Unable to read the journal entry for <name>." when the journal query fails.
// Readers can be replaced with WithInfoReader and WithJournalReader.
//
// # Concurrency
//
// All operations block. A Unit holds no locks; concurrent reads of distinct or
// identical units are safe as long as Refresh is not called at the same time.
package unit
