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

	"github.com/google/uuid"

	"github.com/NVIDIA/sysunit/pkg/collector"
	"github.com/NVIDIA/sysunit/pkg/unit"
)

// Report is the document written by the CLI.
type Report struct {
	Header `json:",inline" yaml:",inline"`

	// ID uniquely identifies this report.
	ID string `json:"id" yaml:"id"`

	Units        []*unit.Unit            `json:"units" yaml:"units"`
	Skipped      []collector.Skipped     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Descriptions []collector.Description `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
}

// Option configures a Report.
type Option func(*Report)

// WithClock sets the time recorded in the report header.
func WithClock(now func() time.Time) Option {
	return func(r *Report) {
		r.SetMetadata("timestamp", now().UTC().Format(time.RFC3339))
	}
}

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(r *Report) {
		r.SetMetadata(key, value)
	}
}

// New creates an empty unit list report stamped with version.
func New(version string, opts ...Option) *Report {
	r := &Report{
		ID:    uuid.NewString(),
		Units: make([]*unit.Unit, 0),
	}
	r.Init(KindUnitList, version, time.Now())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetResult stores an enumeration result.
func (r *Report) SetResult(res *collector.Result) {
	if res == nil {
		return
	}
	r.Units = res.Units
	r.Skipped = res.Skipped
}

// SetDescriptions stores retrieved descriptions and marks the report as a
// description document.
func (r *Report) SetDescriptions(ds []collector.Description) {
	r.Descriptions = ds
	r.Kind = KindUnitDescription
}

// Columns implements serializer.Tabular.
func (r *Report) Columns() []string {
	if r.Kind == KindUnitDescription {
		return []string{"UNIT", "TYPE", "STATE", "DESCRIPTION"}
	}
	return []string{"UNIT", "TYPE", "STATE", "PATH"}
}

// Rows implements serializer.Tabular. Skipped units are listed last with
// their error code in the STATE column.
func (r *Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Units)+len(r.Skipped))

	if r.Kind == KindUnitDescription {
		for _, d := range r.Descriptions {
			if d.Unit == nil {
				continue
			}
			rows = append(rows, []string{d.Unit.Name, d.Title, d.Unit.State.String(), d.Description})
		}
	} else {
		for _, u := range r.Units {
			rows = append(rows, []string{u.Name, u.Type.Title(), u.State.String(), u.Path})
		}
	}

	for _, s := range r.Skipped {
		rows = append(rows, []string{s.Name, "-", string(s.Code), s.Path})
	}

	return rows
}
