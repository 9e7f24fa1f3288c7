// Copyright 2025 ldx Authors
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

// Package userconf manages the tool's own settings under ~/.ldx.
// These are the tool's settings, not the emulator's: known installation
// roots, cache sizing, batch pacing, and the history toggle.
package userconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// getConfigDir returns the config directory path.
// Uses LDX_CONFIG_DIR env var if set, otherwise defaults to ~/.ldx.
// Computed dynamically to support test isolation.
func getConfigDir() string {
	if dir := os.Getenv("LDX_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ldx")
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	return getConfigDir()
}

// ConfigPath returns the settings file path.
func ConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// LockPath returns the lock file guarding settings writes.
func LockPath() string {
	return filepath.Join(getConfigDir(), "config.lock")
}

// HistoryPath returns the command history database path.
func HistoryPath() string {
	return filepath.Join(getConfigDir(), "history.db")
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	return os.MkdirAll(getConfigDir(), 0700)
}

// Config is the tool's settings file.
type Config struct {
	// Installs are known LDPlayer installation roots, in preference
	// order. Discovery falls back to these when no emulator is running.
	Installs []string `yaml:"installs"`

	// CacheCapacity bounds the shared config-file cache (default 1000).
	CacheCapacity int `yaml:"cache_capacity"`

	// BatchInterval is the pause between batch dispatches, in seconds
	// (default 5).
	BatchInterval int `yaml:"batch_interval"`

	// History enables recording console invocations (default true).
	History *bool `yaml:"history"`
}

// ApplyDefaults fills zero-value fields with their defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = 1000
	}
	if cfg.BatchInterval <= 0 {
		cfg.BatchInterval = 5
	}
	if cfg.History == nil {
		t := true
		cfg.History = &t
	}
}

// HistoryEnabled returns whether invocation recording is on.
func (cfg *Config) HistoryEnabled() bool {
	return cfg.History == nil || *cfg.History
}

// Load reads the settings file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyDefaults()
			return &cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigPath(), err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Save writes the settings file. A file lock serializes concurrent CLI
// invocations; the write itself goes through a unique temp file renamed
// over the target.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	lock := flock.New(LockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock settings: %w", err)
	}
	defer lock.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	header := []byte("# ldx settings\n# See: ldx config --help\n\n")

	tmp := ConfigPath() + ".tmp-" + uuid.NewString()[:8]
	if err := os.WriteFile(tmp, append(header, data...), 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, ConfigPath()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// AddInstall records an installation root in the settings, ignoring
// duplicates.
func AddInstall(root string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	for _, p := range cfg.Installs {
		if p == root {
			return nil
		}
	}
	cfg.Installs = append(cfg.Installs, root)
	return Save(cfg)
}
