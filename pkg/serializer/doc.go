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


// Package serializer encodes reports to JSON, YAML and table output and
// decodes JSON or YAML files such as the CLI configuration.
//
// # Formats
//
// JSON is indented with two spaces. YAML uses gopkg.in/yaml.v3 with a
// two-space indent. Table output is write-only: values implementing Tabular
// print as columns, everything else is flattened into sorted FIELD/VALUE
// pairs keyed by JSON field name ("units.[0].name").
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer func() {
//	    if c, ok := w.(serializer.Closer); ok {
//	        _ = c.Close()
//	    }
//	}()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// An empty path, or one that cannot be created, falls back to stdout.
//
// # Reading
//
//	cfg, err := serializer.FromFile[Config]("sysunit.yaml")
//
// The format is taken from the file extension: .json is JSON, anything else
// is YAML. Fields the target type does not declare are rejected unless
// WithLenient is passed.
package serializer
