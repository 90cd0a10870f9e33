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

package serializer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Patterns    []string `json:"patterns" yaml:"patterns"`
	Concurrency int      `json:"concurrency" yaml:"concurrency"`
}

func contextWithCancel(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithCancel(t.Context())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.json", FormatJSON},
		{"config.JSON", FormatJSON},
		{"config.yaml", FormatYAML},
		{"/etc/sysunit/config.yml", FormatYAML},
		{"sysunitrc", FormatYAML},
		{"config.toml", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestNewDecoder(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		d, err := NewDecoder(f)
		require.NoError(t, err)
		assert.NotNil(t, d)
	}

	for _, f := range []Format{FormatTable, Format("xml"), Format("")} {
		d, err := NewDecoder(f)
		assert.Error(t, err, f)
		assert.Nil(t, d)
	}
}

func TestDecoder_Decode(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		opts    []DecoderOption
		input   string
		want    testConfig
		wantErr bool
	}{
		{
			name:   "json",
			format: FormatJSON,
			input:  `{"patterns":["*.service"],"concurrency":4}`,
			want:   testConfig{Patterns: []string{"*.service"}, Concurrency: 4},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input:  "patterns:\n  - '*.timer'\n  - '*.socket'\nconcurrency: 2\n",
			want:   testConfig{Patterns: []string{"*.timer", "*.socket"}, Concurrency: 2},
		},
		{
			name:   "empty yaml",
			format: FormatYAML,
			input:  "",
		},
		{
			name:    "unknown json field",
			format:  FormatJSON,
			input:   `{"pattern":["*.service"]}`,
			wantErr: true,
		},
		{
			name:    "unknown yaml field",
			format:  FormatYAML,
			input:   "concurency: 3\n",
			wantErr: true,
		},
		{
			name:   "lenient yaml",
			format: FormatYAML,
			opts:   []DecoderOption{WithLenient()},
			input:  "concurency: 3\nconcurrency: 1\n",
			want:   testConfig{Concurrency: 1},
		},
		{
			name:    "invalid json",
			format:  FormatJSON,
			input:   `{"patterns":`,
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			format:  FormatYAML,
			input:   "patterns: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecoder(tt.format, tt.opts...)
			require.NoError(t, err)

			var got testConfig
			err = d.Decode(strings.NewReader(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecoder_NilInput(t *testing.T) {
	d, err := NewDecoder(FormatJSON)
	require.NoError(t, err)
	assert.Error(t, d.Decode(nil, &testConfig{}))
}

func TestFromFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "sysunit.yaml", "patterns: ['*.service']\nconcurrency: 3\n")
		cfg, err := FromFile[testConfig](path)
		require.NoError(t, err)
		assert.Equal(t, []string{"*.service"}, cfg.Patterns)
		assert.Equal(t, 3, cfg.Concurrency)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "sysunit.json", `{"concurrency":5}`)
		cfg, err := FromFile[testConfig](path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Concurrency)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile[testConfig](filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed content", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "concurrency: [")
		_, err := FromFile[testConfig](path)
		assert.Error(t, err)
	})

	t.Run("oversize", func(t *testing.T) {
		path := writeFile(t, "big.yaml", "# "+strings.Repeat("x", maxDocumentSize)+"\n")
		_, err := FromFile[testConfig](path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})
}
