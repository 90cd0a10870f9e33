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

package report

import (
	"time"
)

// Kind identifies the type of document a Report carries.
type Kind string

const (
	// KindUnitList is produced by enumeration alone.
	KindUnitList Kind = "UnitList"
	// KindUnitDescription adds retrieved definition text and journal data.
	KindUnitDescription Kind = "UnitDescription"
)

// APIVersion is the schema version written into every report.
const APIVersion = "sysunit.nvidia.com/v1alpha1"

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindUnitList, KindUnitDescription:
		return true
	default:
		return false
	}
}

// Header carries the kind, schema version and free-form metadata of a report.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and API version and records the creation time and tool
// version in Metadata. Existing metadata is replaced.
func (h *Header) Init(kind Kind, version string, now time.Time) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = make(map[string]string)
	h.Metadata["timestamp"] = now.UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}

// SetMetadata adds a metadata key-value pair, initializing the map if needed.
func (h *Header) SetMetadata(key, value string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}
