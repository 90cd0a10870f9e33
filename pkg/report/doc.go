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


// Package report defines the document produced by the sysunit commands.
//
// A Report carries a Header (kind, API version, creation timestamp and tool
// version), a random ID, the classified units, any units skipped during
// enumeration and, for the describe command, per-unit descriptions.
//
// Reports implement serializer.Tabular so the table format prints one row per
// unit rather than a flattened field listing.
package report
