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

package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/sysunit/pkg/defaults"
	"github.com/NVIDIA/sysunit/pkg/errors"
)

// unitFileStateProperty is the Unit interface property carrying the enablement state.
const unitFileStateProperty = "UnitFileState"

// Conn is the subset of a service manager bus connection the client uses.
// *dbus.Conn satisfies it.
type Conn interface {
	Close()
	GetUnitPropertyContext(ctx context.Context, unit string, propertyName string) (*dbus.Property, error)
	ListUnitFilesByPatternsContext(ctx context.Context, states []string, patterns []string) ([]dbus.UnitFile, error)
}

// Entry is a unit file as listed by the service manager.
type Entry struct {
	// Name is the unit name, the base name of Path.
	Name string
	// Path is the location of the definition file.
	Path string
	// RawState is the enablement state in the quoted form the bus renders it,
	// e.g. "\"enabled\"". Empty when the listing did not carry one.
	RawState string
}

// Client reads unit file listings and enablement states from the service manager.
type Client struct {
	conn Conn
}

// NewClient wraps an existing connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Connect dials the system service manager, or the per-user manager when user is true.
func Connect(ctx context.Context, user bool) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.BusConnectTimeout)
	defer cancel()

	var (
		conn *dbus.Conn
		err  error
	)
	if user {
		conn, err = dbus.NewUserConnectionContext(ctx)
	} else {
		conn, err = dbus.NewSystemConnectionContext(ctx)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}

	return NewClient(conn), nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	c.conn.Close()
}

// UnitFileState returns the raw UnitFileState property of the named unit as
// rendered by the bus variant, e.g. "\"enabled\"". Decoding is left to the caller.
func (c *Client) UnitFileState(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.BusCallTimeout)
	defer cancel()

	prop, err := c.conn.GetUnitPropertyContext(ctx, name, unitFileStateProperty)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to get unit file state",
			err, map[string]any{"unit": name})
	}
	if prop == nil {
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "unit has no file state",
			map[string]any{"unit": name})
	}

	return prop.Value.String(), nil
}

// ListUnitFiles lists unit files matching any of patterns. An empty pattern
// list matches every unit file.
func (c *Client) ListUnitFiles(ctx context.Context, patterns []string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.BusCallTimeout)
	defer cancel()

	slog.Debug("listing unit files", slog.Any("patterns", patterns))

	files, err := c.conn.ListUnitFilesByPatternsContext(ctx, nil, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to list unit files: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		e := Entry{
			Name: filepath.Base(f.Path),
			Path: f.Path,
		}
		if f.Type != "" {
			e.RawState = strconv.Quote(f.Type)
		}
		entries = append(entries, e)
	}

	slog.Debug("listed unit files", slog.Int("count", len(entries)))

	return entries, nil
}
