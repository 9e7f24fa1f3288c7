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

package userconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Setenv-based isolation; these tests cannot run in parallel.

func TestConfigDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LDX_CONFIG_DIR", dir)

	assert.Equal(t, dir, ConfigDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigPath())
	assert.Equal(t, filepath.Join(dir, "history.db"), HistoryPath())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("LDX_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Installs)
	assert.Equal(t, 1000, cfg.CacheCapacity)
	assert.Equal(t, 5, cfg.BatchInterval)
	assert.True(t, cfg.HistoryEnabled())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("LDX_CONFIG_DIR", t.TempDir())

	f := false
	in := &Config{
		Installs:      []string{`C:\LDPlayer\LDPlayer9`},
		CacheCapacity: 50,
		BatchInterval: 2,
		History:       &f,
	}
	require.NoError(t, Save(in))

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in.Installs, out.Installs)
	assert.Equal(t, 50, out.CacheCapacity)
	assert.Equal(t, 2, out.BatchInterval)
	assert.False(t, out.HistoryEnabled())

	// No temp files left behind.
	entries, err := os.ReadDir(ConfigDir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LDX_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestAddInstall(t *testing.T) {
	t.Setenv("LDX_CONFIG_DIR", t.TempDir())

	require.NoError(t, AddInstall(`C:\LDPlayer\LDPlayer9`))
	require.NoError(t, AddInstall(`D:\LDPlayer`))
	require.NoError(t, AddInstall(`C:\LDPlayer\LDPlayer9`))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\LDPlayer\LDPlayer9`, `D:\LDPlayer`}, cfg.Installs)
}
