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

package collector

import (
	"context"
	"time"

	"github.com/NVIDIA/sysunit/pkg/collector/systemd"
	"github.com/NVIDIA/sysunit/pkg/defaults"
	"github.com/NVIDIA/sysunit/pkg/journal"
	"github.com/NVIDIA/sysunit/pkg/unitfile"
)

// Bus is what the collector needs from the service manager connection.
type Bus interface {
	Lister
	StateSource
	Close()
}

// Factory creates the collector's dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateBus(ctx context.Context) (Bus, error)
	CreateInfoReader() *unitfile.Reader
	CreateJournalReader() *journal.Reader
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// DefaultFactory creates dependencies backed by the real bus, file system and
// journal query tool.
type DefaultFactory struct {
	// User selects the per-user service manager instead of the system one.
	User bool
	// JournalLines limits journal output per unit; zero means unlimited.
	JournalLines int
	// JournalTimeout bounds a single journal query.
	JournalTimeout time.Duration
	// JournalCommand is the journal query tool.
	JournalCommand string
}

// WithUserManager selects the per-user service manager.
func WithUserManager(user bool) FactoryOption {
	return func(f *DefaultFactory) {
		f.User = user
	}
}

// WithJournalLines limits journal output per unit.
func WithJournalLines(n int) FactoryOption {
	return func(f *DefaultFactory) {
		f.JournalLines = n
	}
}

// WithJournalTimeout bounds a single journal query.
func WithJournalTimeout(d time.Duration) FactoryOption {
	return func(f *DefaultFactory) {
		f.JournalTimeout = d
	}
}

// WithJournalCommand sets the journal query tool.
func WithJournalCommand(command string) FactoryOption {
	return func(f *DefaultFactory) {
		f.JournalCommand = command
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{
		JournalTimeout: defaults.JournalTimeout,
		JournalCommand: journal.DefaultCommand,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateBus connects to the service manager.
func (f *DefaultFactory) CreateBus(ctx context.Context) (Bus, error) {
	client, err := systemd.Connect(ctx, f.User)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateInfoReader creates a unit definition file reader.
func (f *DefaultFactory) CreateInfoReader() *unitfile.Reader {
	return unitfile.NewReader()
}

// CreateJournalReader creates a journal reader.
func (f *DefaultFactory) CreateJournalReader() *journal.Reader {
	return journal.NewReader(
		journal.WithCommand(f.JournalCommand),
		journal.WithLines(f.JournalLines),
		journal.WithTimeout(f.JournalTimeout),
	)
}
