// Copyright 2025 the decopy authors
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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "full_yaml_config",
			filename: "config.yaml",
			config: `
overwrite: false
ignore:
  - "*.tmp"
  - "**/node_modules/**"
chunk_size: 65536
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.OverwriteEnabled(), "overwrite should be disabled")
				assert.Equal(t, []string{"*.tmp", "**/node_modules/**"}, cfg.Ignore, "ignore patterns should match")
				assert.Equal(t, 65536, cfg.ChunkSize, "chunk size should match")
			},
		},
		{
			name:     "minimal_yaml_config",
			filename: "config.yaml",
			config:   `ignore: ["*.log"]`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.OverwriteEnabled(), "overwrite should default to true")
				assert.Equal(t, []string{"*.log"}, cfg.Ignore, "ignore patterns should match")
				assert.Zero(t, cfg.ChunkSize, "chunk size should be unset")
			},
		},
		{
			name:     "hcl_config",
			filename: "config.hcl",
			config: `
overwrite  = false
ignore     = ["*.tmp"]
chunk_size = 1024
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.OverwriteEnabled(), "overwrite should be disabled")
				assert.Equal(t, []string{"*.tmp"}, cfg.Ignore, "ignore patterns should match")
				assert.Equal(t, 1024, cfg.ChunkSize, "chunk size should match")
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "config.yaml",
			config:      `overwite: true`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "malformed_hcl",
			filename:    "config.hcl",
			config:      `overwrite = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.toml",
			config:      `overwrite = false`,
			wantErr:     true,
			errContains: "unsupported config extension",
		},
		{
			name:        "negative_chunk_size",
			filename:    "config.yaml",
			config:      `chunk_size: -1`,
			wantErr:     true,
			errContains: "chunk_size must not be negative",
		},
		{
			name:        "invalid_ignore_pattern",
			filename:    "config.yaml",
			config:      `ignore: ["[unclosed"]`,
			wantErr:     true,
			errContains: "invalid ignore pattern",
		},
	}

	ctx := zerolog.Nop().WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, configPath, cfg.Location(), "location should record the file path")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())

	_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "an explicit path must exist")
	assert.Contains(t, err.Error(), "reading config file", "error should name the failing step")
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())

	// Run discovery from an empty directory.
	wd, err := os.Getwd()
	require.NoError(t, err, "getting working directory should succeed")
	require.NoError(t, os.Chdir(t.TempDir()), "changing directory should succeed")
	defer func() {
		require.NoError(t, os.Chdir(wd), "restoring directory should succeed")
	}()

	cfg, err := Load(ctx, "")
	require.NoError(t, err, "Load should fall back to defaults")
	assert.Empty(t, cfg.Location(), "defaults have no file location")
	assert.True(t, cfg.OverwriteEnabled(), "overwrite should default to true")
}

func TestLoad_DiscoversDefaultName(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())

	wd, err := os.Getwd()
	require.NoError(t, err, "getting working directory should succeed")
	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir), "changing directory should succeed")
	defer func() {
		require.NoError(t, os.Chdir(wd), "restoring directory should succeed")
	}()

	err = os.WriteFile(".decopy.yaml", []byte(`chunk_size: 512`), 0644)
	require.NoError(t, err, "writing config file should succeed")

	cfg, err := Load(ctx, "")
	require.NoError(t, err, "Load should discover the default file")
	assert.Equal(t, ".decopy.yaml", cfg.Location(), "discovered path should be recorded")
	assert.Equal(t, 512, cfg.ChunkSize, "chunk size should come from the file")
}
