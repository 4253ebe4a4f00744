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
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Config holds the tool's file-configurable behavior. Flags override
// anything loaded from a file.
type Config struct {
	// Overwrite replaces existing destination files. Defaults to true when
	// unset in the file.
	Overwrite *bool `yaml:"overwrite" hcl:"overwrite,optional"`
	// Ignore lists doublestar globs excluded from sizing and copying,
	// matched against slash-separated paths relative to the source root.
	Ignore []string `yaml:"ignore" hcl:"ignore,optional"`
	// ChunkSize is the copy granularity in bytes; zero means the copier's
	// default.
	ChunkSize int `yaml:"chunk_size" hcl:"chunk_size,optional"`

	location string // path the config was loaded from, empty for defaults
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{}
}

// OverwriteEnabled resolves the overwrite setting, defaulting to true.
func (c *Config) OverwriteEnabled() bool {
	if c.Overwrite == nil {
		return true
	}
	return *c.Overwrite
}

// Location returns the path the config was loaded from, or "" for the
// built-in defaults.
func (c *Config) Location() string {
	return c.location
}

// 🔍 Validate checks the loaded values before the run starts
func (c *Config) Validate() error {
	if c.ChunkSize < 0 {
		return errors.Errorf("chunk_size must not be negative, got %d", c.ChunkSize)
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return nil
}
