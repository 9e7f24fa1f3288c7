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
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage Android apps inside instances",
}

var (
	appIndexes []string
	appAPK     string
	appPackage string
)

// runAppCommand dispatches one of the app console commands to the
// selected instances with the given extra arguments.
func runAppCommand(cmd *cobra.Command, command string, args ...string) error {
	attr, err := buildAttr(cmd.Context())
	if err != nil {
		return err
	}
	ids, err := resolveIndexes(buildClient(attr), appIndexes)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("at least one --index is required")
	}
	runner, cleanup, err := buildRunner(attr)
	if err != nil {
		return err
	}
	defer cleanup()
	return dispatch(cmd.Context(), runner, command, ids, args...)
}

var appInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install an app from an APK file or the app store package name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case appAPK != "" && appPackage != "":
			return fmt.Errorf("--filename and --packagename are mutually exclusive")
		case appAPK != "":
			return runAppCommand(cmd, "installapp", "--filename", appAPK)
		case appPackage != "":
			return runAppCommand(cmd, "installapp", "--packagename", appPackage)
		default:
			return fmt.Errorf("one of --filename or --packagename is required")
		}
	},
}

var appRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an installed app",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appPackage == "" {
			return fmt.Errorf("--packagename is required")
		}
		return runAppCommand(cmd, "runapp", "--packagename", appPackage)
	},
}

var appKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a running app",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appPackage == "" {
			return fmt.Errorf("--packagename is required")
		}
		return runAppCommand(cmd, "killapp", "--packagename", appPackage)
	},
}

var appUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall an app",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appPackage == "" {
			return fmt.Errorf("--packagename is required")
		}
		return runAppCommand(cmd, "uninstallapp", "--packagename", appPackage)
	},
}

func init() {
	appCmd.PersistentFlags().StringArrayVar(&appIndexes, "index", nil,
		"instance id or name (repeatable)")
	appCmd.PersistentFlags().StringVar(&appPackage, "packagename", "", "Android package name")
	appInstallCmd.Flags().StringVar(&appAPK, "filename", "", "APK file path")

	appCmd.AddCommand(appInstallCmd, appRunCmd, appKillCmd, appUninstallCmd)
	rootCmd.AddCommand(appCmd)
}
