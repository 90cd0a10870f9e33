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


// Package journal retrieves recent journal entries for a unit.
//
// Each call spawns one journal query process (journalctl by default) scoped to
// the current boot, newest entry first, filtered by unit name. Nothing is
// cached or streamed. The process is the only potentially slow operation in
// sysunit, so queries carry a default timeout (defaults.JournalTimeout) and
// honor the caller's context.
//
// Read never fails: when the tool is missing, times out or produces non UTF-8
// output it returns FallbackMessage. Query exposes the underlying error.
//
//	r := journal.NewReader(journal.WithLines(50))
//	fmt.Println(r.Read(ctx, "sshd.service"))
//
// The Runner interface lets tests substitute a fake process runner:
//
//	r := journal.NewReader(journal.WithRunner(fakeRunner))
package journal
