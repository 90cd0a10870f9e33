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
	"context"

	"github.com/NVIDIA/sysunit/pkg/journal"
	"github.com/NVIDIA/sysunit/pkg/unitfile"
)

// InfoReader reads a unit definition file. Implementations return an empty
// string when the file cannot be read.
type InfoReader interface {
	Read(ctx context.Context, path string) string
}

// JournalReader reads the recent journal of a unit. Implementations return a
// placeholder message when the journal cannot be read.
type JournalReader interface {
	Read(ctx context.Context, name string) string
}

// Option configures a Unit.
type Option func(*Unit)

// WithInfoReader replaces the definition file reader.
func WithInfoReader(r InfoReader) Option {
	return func(u *Unit) {
		u.info = r
	}
}

// WithJournalReader replaces the journal reader.
func WithJournalReader(r JournalReader) Option {
	return func(u *Unit) {
		u.journal = r
	}
}

// Unit is a single unit discovered by an external enumerator. It is a value:
// the definition text and journal are fetched on demand and never stored.
type Unit struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	State State  `json:"state" yaml:"state"`
	Type  Type   `json:"type" yaml:"type"`

	info    InfoReader
	journal JournalReader
}

// New creates a unit from already classified parts.
func New(name, path string, state State, typ Type, opts ...Option) *Unit {
	u := &Unit{
		Name:  name,
		Path:  path,
		State: state,
		Type:  typ,
	}

	for _, opt := range opts {
		opt(u)
	}

	if u.info == nil {
		u.info = unitfile.NewReader()
	}
	if u.journal == nil {
		u.journal = journal.NewReader()
	}
	return u
}

// NewFromBus classifies path and decodes rawState, then creates the unit.
// The first classification failure is returned; it concerns this unit only.
func NewFromBus(name, path, rawState string, opts ...Option) (*Unit, error) {
	typ, err := ParseType(path)
	if err != nil {
		return nil, err
	}

	state, err := ParseState(rawState)
	if err != nil {
		return nil, err
	}

	return New(name, path, state, typ, opts...), nil
}

// Refresh re-decodes the enablement state from a newly fetched raw message.
// On failure the previous state is kept.
func (u *Unit) Refresh(rawState string) error {
	state, err := ParseState(rawState)
	if err != nil {
		return err
	}
	u.State = state
	return nil
}

// Info returns the definition text read from Path, or an empty string.
// Units built without New use the default file reader.
func (u *Unit) Info(ctx context.Context) string {
	r := u.info
	if r == nil {
		r = unitfile.NewReader()
	}
	return r.Read(ctx, u.Path)
}

// Journal returns this boot's journal for Name, newest first, or a
// placeholder message naming the unit. Units built without New use the
// default journal reader.
func (u *Unit) Journal(ctx context.Context) string {
	r := u.journal
	if r == nil {
		r = journal.NewReader()
	}
	return r.Read(ctx, u.Name)
}

// Description reads the definition and returns its Description= value.
func (u *Unit) Description(ctx context.Context) (string, bool) {
	return Description(u.Info(ctx))
}
