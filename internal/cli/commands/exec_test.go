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

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInstall builds a minimal installation layout whose ldconsole stub
// records the argv it was invoked with.
func fakeInstall(t *testing.T) (root, argvFile string) {
	t.Helper()
	root = t.TempDir()
	for _, dir := range []string{
		filepath.Join(root, "vms", "customizeConfigs"),
		filepath.Join(root, "vms", "recommendConfigs"),
		filepath.Join(root, "vms", "operationRecords"),
		filepath.Join(root, "vms", "config"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "dnconsole.exe"), nil, 0644))

	argvFile = filepath.Join(root, "argv.txt")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n", argvFile)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ldconsole.exe"), []byte(script), 0755))
	return root, argvFile
}

func TestExecPassesConsoleFlagsThrough(t *testing.T) {
	t.Setenv("LDX_CONFIG_DIR", t.TempDir())
	root, argvFile := fakeInstall(t)

	// Flags after the console command name are ldconsole's, not ours.
	rootCmd.SetArgs([]string{
		"exec", "--install", root, "--index", "0",
		"installapp", "--filename", "game.apk",
	})
	require.NoError(t, rootCmd.Execute())

	argv, err := os.ReadFile(argvFile)
	require.NoError(t, err)
	assert.Equal(t, "installapp --index 0 --filename game.apk",
		strings.TrimSpace(string(argv)))
}
