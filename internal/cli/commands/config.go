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
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ldx/internal/ldconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit emulator configuration files",
	Long: `Inspect and edit the emulator's JSON configuration files.

Keys use the emulator's dotted form, e.g. basicSettings.fps or
statusSettings.playerName. With --global the command operates on
leidians.config instead of a per-instance file.

Examples:
  ldx config show --index 0
  ldx config get --index 0 statusSettings.playerName
  ldx config set --index 0 advancedSettings.cpuCount 4
  ldx config set --global framesPerSecond 120`,
}

var (
	configIndex  string
	configGlobal bool
)

// configAccess abstracts the per-instance and global files behind the
// same dotted-key operations.
type configAccess struct {
	get func(ctx context.Context) (map[string]any, error)
	set func(ctx context.Context, key string, value any) error
}

func buildConfigAccess(cmd *cobra.Command) (*configAccess, error) {
	attr, err := buildAttr(cmd.Context())
	if err != nil {
		return nil, err
	}
	client := buildClient(attr)

	if configGlobal {
		f := ldconfig.NewGlobalFile(client)
		return &configAccess{get: f.GetRaw, set: f.SetRaw}, nil
	}

	ids, err := resolveIndexes(client, []string{configIndex})
	if err != nil {
		return nil, err
	}
	f := ldconfig.NewInstanceFiles(client)
	id := ids[0]
	return &configAccess{
		get: func(ctx context.Context) (map[string]any, error) {
			return f.GetRaw(ctx, id)
		},
		set: func(ctx context.Context, key string, value any) error {
			return f.SetRaw(ctx, id, key, value)
		},
	}, nil
}

// parseValue decodes a command-line value: JSON when it parses, a bare
// string otherwise. Lets users write both 4 and "Pixel 5".
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a configuration file as nested JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		access, err := buildConfigAccess(cmd)
		if err != nil {
			return err
		}
		flat, err := access.get(cmd.Context())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(ldconfig.ExpandDotted(flat), "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		access, err := buildConfigAccess(cmd)
		if err != nil {
			return err
		}
		flat, err := access.get(cmd.Context())
		if err != nil {
			return err
		}
		v, ok := flat[args[0]]
		if !ok {
			return fmt.Errorf("key not set: %s", args[0])
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		access, err := buildConfigAccess(cmd)
		if err != nil {
			return err
		}
		return access.set(cmd.Context(), args[0], parseValue(args[1]))
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove one configuration key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		access, err := buildConfigAccess(cmd)
		if err != nil {
			return err
		}
		return access.set(cmd.Context(), args[0], nil)
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&configIndex, "index", "0", "instance id or name")
	configCmd.PersistentFlags().BoolVar(&configGlobal, "global", false,
		"operate on the global leidians.config")

	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
