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

package unit

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/sysunit/pkg/errors"
)

// Type is the kind of a unit, derived from its file name suffix.
type Type string

const (
	TypeAutomount Type = "automount"
	TypeBusname   Type = "busname"
	TypeMount     Type = "mount"
	TypePath      Type = "path"
	TypeScope     Type = "scope"
	TypeService   Type = "service"
	TypeSlice     Type = "slice"
	TypeSocket    Type = "socket"
	TypeSwap      Type = "swap"
	TypeTarget    Type = "target"
	TypeTimer     Type = "timer"
)

var types = map[string]Type{
	string(TypeAutomount): TypeAutomount,
	string(TypeBusname):   TypeBusname,
	string(TypeMount):     TypeMount,
	string(TypePath):      TypePath,
	string(TypeScope):     TypeScope,
	string(TypeService):   TypeService,
	string(TypeSlice):     TypeSlice,
	string(TypeSocket):    TypeSocket,
	string(TypeSwap):      TypeSwap,
	string(TypeTarget):    TypeTarget,
	string(TypeTimer):     TypeTimer,
}

var titleCaser = cases.Title(language.English)

// String returns the suffix form of the type, e.g. "service".
func (t Type) String() string {
	return string(t)
}

// Title returns the display name of the type, e.g. "Service".
func (t Type) Title() string {
	return titleCaser.String(string(t))
}

// SupportedTypes returns the recognized unit file suffixes in sorted order.
func SupportedTypes() []string {
	return []string{
		string(TypeAutomount),
		string(TypeBusname),
		string(TypeMount),
		string(TypePath),
		string(TypeScope),
		string(TypeService),
		string(TypeSlice),
		string(TypeSocket),
		string(TypeSwap),
		string(TypeTarget),
		string(TypeTimer),
	}
}

// ParseType classifies a unit by the extension of its file name.
// Matching is exact and case-sensitive. A path without an extension, or with
// one outside the recognized set, returns an ErrCodeUnrecognizedUnitType error.
func ParseType(path string) (Type, error) {
	ext := filepath.Ext(filepath.Base(path))
	if ext == "" || ext == "." {
		return "", errors.NewWithContext(errors.ErrCodeUnrecognizedUnitType,
			"unit path has no type suffix", map[string]any{"path": path})
	}

	if t, ok := types[strings.TrimPrefix(ext, ".")]; ok {
		return t, nil
	}

	return "", errors.NewWithContext(errors.ErrCodeUnrecognizedUnitType,
		"unrecognized unit type suffix "+ext, map[string]any{"path": path})
}
