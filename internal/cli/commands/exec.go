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
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ldx/internal/console"
	"ldx/internal/ldconfig"
	"ldx/internal/util"
)

// resolveIndexes maps caller-facing instance identifiers ("3",
// "leidian3") to instance ids.
func resolveIndexes(c *ldconfig.Client, vals []string) ([]int, error) {
	f := ldconfig.NewInstanceFiles(c)
	ids := make([]int, 0, len(vals))
	for _, v := range vals {
		id, err := f.Resolve(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// dispatch runs a console command against zero, one, or many instances
// and prints any output.
func dispatch(ctx context.Context, r *console.Runner, command string, ids []int, args ...string) error {
	switch len(ids) {
	case 0:
		out, err := r.Exec(ctx, command, args...)
		if err != nil {
			return err
		}
		printOutput(out)
	case 1:
		out, err := r.ExecIndex(ctx, command, ids[0], args...)
		if err != nil {
			return err
		}
		printOutput(out)
	default:
		outputs, err := r.ExecBatch(ctx, command, ids, args...)
		printBatch(outputs)
		if err != nil {
			return err
		}
	}
	return nil
}

func printOutput(out string) {
	if s := strings.TrimSpace(out); s != "" {
		fmt.Println(s)
	}
}

func printBatch(outputs map[int]string) {
	ids := make([]int, 0, len(outputs))
	for id := range outputs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if s := strings.TrimSpace(outputs[id]); s != "" {
			fmt.Printf("[%d] %s\n", id, s)
		}
	}
}

var execIndexes []string

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Run a raw console command",
	Long: `Run a console command verbatim. With one --index the command is
dispatched to that instance; with several, batchable commands are
dispatched to each in turn with a pause in between.

Flag parsing stops at the console command name, so everything after it
is passed through to ldconsole untouched; put --index before it.

Examples:
  ldx exec list
  ldx exec --index 0 launch
  ldx exec --index 0 --index 1 installapp --filename game.apk`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := buildAttr(cmd.Context())
		if err != nil {
			return err
		}
		ids, err := resolveIndexes(buildClient(attr), execIndexes)
		if err != nil {
			return err
		}
		runner, cleanup, err := buildRunner(attr)
		if err != nil {
			return err
		}
		defer cleanup()
		return dispatch(cmd.Context(), runner, args[0], ids, args[1:]...)
	},
}

var (
	launchIndexes []string
	launchWait    bool
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start emulator instances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := buildAttr(cmd.Context())
		if err != nil {
			return err
		}
		ids, err := resolveIndexes(buildClient(attr), launchIndexes)
		if err != nil {
			return err
		}
		runner, cleanup, err := buildRunner(attr)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := dispatch(cmd.Context(), runner, "launch", ids); err != nil {
			return err
		}
		if !launchWait {
			return nil
		}
		for _, id := range ids {
			if err := runner.WaitRunning(cmd.Context(), id, util.DefaultPollConfig()); err != nil {
				return fmt.Errorf("instance %d did not reach running state: %w", id, err)
			}
			fmt.Printf("[%d] running\n", id)
		}
		return nil
	},
}

var quitIndexes []string

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Stop emulator instances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := buildAttr(cmd.Context())
		if err != nil {
			return err
		}
		ids, err := resolveIndexes(buildClient(attr), quitIndexes)
		if err != nil {
			return err
		}
		runner, cleanup, err := buildRunner(attr)
		if err != nil {
			return err
		}
		defer cleanup()
		return dispatch(cmd.Context(), runner, "quit", ids)
	},
}

var quitallCmd = &cobra.Command{
	Use:   "quitall",
	Short: "Stop every running instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := buildAttr(cmd.Context())
		if err != nil {
			return err
		}
		runner, cleanup, err := buildRunner(attr)
		if err != nil {
			return err
		}
		defer cleanup()
		return dispatch(cmd.Context(), runner, "quitall", nil)
	},
}

var rebootIndexes []string

var rebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Restart emulator instances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := buildAttr(cmd.Context())
		if err != nil {
			return err
		}
		ids, err := resolveIndexes(buildClient(attr), rebootIndexes)
		if err != nil {
			return err
		}
		runner, cleanup, err := buildRunner(attr)
		if err != nil {
			return err
		}
		defer cleanup()
		return dispatch(cmd.Context(), runner, "reboot", ids)
	},
}

func init() {
	execCmd.Flags().StringArrayVar(&execIndexes, "index", nil, "instance id or name (repeatable)")
	// Everything after the console command name belongs to ldconsole,
	// including flags pflag has never heard of.
	execCmd.Flags().SetInterspersed(false)
	launchCmd.Flags().StringArrayVar(&launchIndexes, "index", nil, "instance id or name (repeatable)")
	launchCmd.Flags().BoolVar(&launchWait, "wait", false, "wait until Android reports running")
	quitCmd.Flags().StringArrayVar(&quitIndexes, "index", nil, "instance id or name (repeatable)")
	rebootCmd.Flags().StringArrayVar(&rebootIndexes, "index", nil, "instance id or name (repeatable)")

	rootCmd.AddCommand(execCmd, launchCmd, quitCmd, quitallCmd, rebootCmd)
}
