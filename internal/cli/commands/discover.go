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

	"github.com/spf13/cobra"

	"ldx/internal/userconf"
)

var discoverSave bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Locate the LDPlayer installation",
	Long: `Locate the LDPlayer installation by scanning running emulator
processes, falling back to the roots recorded in the ldx settings.

Examples:
  ldx discover
  ldx discover --save`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false,
		"record the discovered root in the ldx settings")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	attr, err := buildAttr(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Installation: %s\n", attr.Path)
	fmt.Printf("Console: %s\n", attr.LDConsole())
	fmt.Printf("Config dir: %s\n", attr.ConfigDir())

	if discoverSave {
		if err := userconf.AddInstall(attr.Path); err != nil {
			return fmt.Errorf("failed to record installation: %w", err)
		}
		fmt.Printf("Recorded in %s\n", userconf.ConfigPath())
	}
	return nil
}
