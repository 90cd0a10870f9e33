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


// Package unitfile reads unit definition files from disk.
//
// Read is best-effort: the text is presentation data, so a missing or
// unreadable file yields an empty string rather than an error. ParseOptions
// turns text already read into section/key/value triples with go-systemd's
// unit parser, so a caller needing both reads the file once.
//
//	r := unitfile.NewReader()
//	text := r.Read(ctx, "/usr/lib/systemd/system/sshd.service")
//
//	opts, err := unitfile.ParseOptions(text)
//	if err == nil {
//	    wantedBy := unitfile.Lookup(opts, "Install", "WantedBy")
//	}
package unitfile
