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

// Package install resolves and validates LDPlayer installation
// directories. An Attr value is the single source of truth for every
// path inside one installation: the console executables, the VM folder,
// and the configuration directories the config managers read from.
package install

import (
	"fmt"
	"os"
	"path/filepath"

	"ldx/internal/common"
)

// Attr holds the resolved paths of one LDPlayer installation.
type Attr struct {
	// Path is the absolute installation root.
	Path string
}

// New resolves path to an absolute root and validates the installation
// layout.
func New(path string) (*Attr, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidPath, path)
	}
	a := &Attr{Path: abs}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewUnchecked resolves path without validating the layout.
// Used by tests and by callers that already validated the root.
func NewUnchecked(path string) *Attr {
	abs, _ := filepath.Abs(path)
	return &Attr{Path: abs}
}

// DNConsole returns the path to dnconsole.exe.
func (a *Attr) DNConsole() string {
	return filepath.Join(a.Path, "dnconsole.exe")
}

// LDConsole returns the path to the ldconsole executable.
func (a *Attr) LDConsole() string {
	return filepath.Join(a.Path, "ldconsole.exe")
}

// VMFolder returns the virtual machines folder.
func (a *Attr) VMFolder() string {
	return filepath.Join(a.Path, "vms")
}

// CustomizeConfigs returns the user-customized profiles folder.
func (a *Attr) CustomizeConfigs() string {
	return filepath.Join(a.VMFolder(), "customizeConfigs")
}

// RecommendedConfigs returns the bundled recommended profiles folder.
func (a *Attr) RecommendedConfigs() string {
	return filepath.Join(a.VMFolder(), "recommendConfigs")
}

// OperationRecords returns the recorded macros folder.
func (a *Attr) OperationRecords() string {
	return filepath.Join(a.VMFolder(), "operationRecords")
}

// ConfigDir returns the folder holding leidians.config and the
// per-instance leidian<N>.config files.
func (a *Attr) ConfigDir() string {
	return filepath.Join(a.VMFolder(), "config")
}

// Validate checks that the root contains the files and folders every
// LDPlayer installation ships with.
func (a *Attr) Validate() error {
	required := []string{
		a.DNConsole(),
		a.VMFolder(),
		a.CustomizeConfigs(),
		a.RecommendedConfigs(),
		a.OperationRecords(),
		a.ConfigDir(),
	}
	for _, p := range required {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s is not a valid installation (missing %s)",
				common.ErrNoInstall, a.Path, filepath.Base(p))
		}
	}
	return nil
}
