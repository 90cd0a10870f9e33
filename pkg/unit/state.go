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
	"strings"

	"github.com/NVIDIA/sysunit/pkg/errors"
)

// State is the enablement state of a unit file as reported by the service manager.
type State string

const (
	StateBad       State = "bad"
	StateDisabled  State = "disabled"
	StateEnabled   State = "enabled"
	StateGenerated State = "generated"
	StateIndirect  State = "indirect"
	StateLinked    State = "linked"
	StateMasked    State = "masked"
	StateStatic    State = "static"
	StateTransient State = "transient"
)

// Only the first letter of the payload is inspected. This holds as long as no
// two recognized states share an initial; "-runtime" variants fold into their
// base state. A state added with a colliding initial needs a full-word match.
var statesByInitial = map[byte]State{
	's': StateStatic,
	'd': StateDisabled,
	'e': StateEnabled,
	'i': StateIndirect,
	'l': StateLinked,
	'm': StateMasked,
	'b': StateBad,
	'g': StateGenerated,
	't': StateTransient,
}

// String returns the state name.
func (s State) String() string {
	return string(s)
}

// SupportedStates returns the recognized enablement states in sorted order.
func SupportedStates() []string {
	return []string{
		string(StateBad),
		string(StateDisabled),
		string(StateEnabled),
		string(StateGenerated),
		string(StateIndirect),
		string(StateLinked),
		string(StateMasked),
		string(StateStatic),
		string(StateTransient),
	}
}

// ParseState decodes the raw UnitFileState property string handed out by the
// bus. The payload is the quoted word in the message, for example
//
//	variant string:"enabled"
//	"masked-runtime"
//
// The payload starts after the first double quote wherever it appears; no
// minimum prefix length is enforced, so the bare "enabled" form and short
// messages such as `v "s` decode too. Only the payload's first letter is
// consulted, which folds the -runtime variants into their base states.
//
// A message without a quoted payload, with an empty payload, or whose payload
// starts with an unknown letter returns an ErrCodeUnrecognizedUnitState error.
func ParseState(raw string) (State, error) {
	start := strings.IndexByte(raw, '"')
	if start < 0 || start+1 >= len(raw) {
		return "", errors.NewWithContext(errors.ErrCodeUnrecognizedUnitState,
			"state message has no quoted payload", map[string]any{"raw": raw})
	}

	payload := raw[start+1:]
	if end := strings.IndexByte(payload, '"'); end >= 0 {
		payload = payload[:end]
	}
	if payload == "" {
		return "", errors.NewWithContext(errors.ErrCodeUnrecognizedUnitState,
			"state message has an empty payload", map[string]any{"raw": raw})
	}

	if s, ok := statesByInitial[payload[0]]; ok {
		return s, nil
	}

	return "", errors.NewWithContext(errors.ErrCodeUnrecognizedUnitState,
		"unrecognized unit state "+payload, map[string]any{"raw": raw})
}
