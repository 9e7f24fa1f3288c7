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
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listRunning bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured instances",
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

		list := runner.List
		if listRunning {
			list = runner.RunningList
		}
		names, err := list(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-instance runtime state",
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

		metas, err := runner.List2(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPID\tANDROID")
		for _, m := range metas {
			state := "stopped"
			if m.Alive() {
				state = "running"
			} else if m.AndroidStarted {
				state = "stale"
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", m.ID, m.Name, m.PID, state)
		}
		return w.Flush()
	},
}

var isrunningIndex string

var isrunningCmd = &cobra.Command{
	Use:   "isrunning",
	Short: "Report whether an instance's Android system is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := buildAttr(cmd.Context())
		if err != nil {
			return err
		}
		ids, err := resolveIndexes(buildClient(attr), []string{isrunningIndex})
		if err != nil {
			return err
		}
		runner, cleanup, err := buildRunner(attr)
		if err != nil {
			return err
		}
		defer cleanup()

		running, err := runner.IsRunning(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		if running {
			fmt.Println("running")
		} else {
			fmt.Println("stopped")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listRunning, "running", false, "only running instances")
	isrunningCmd.Flags().StringVar(&isrunningIndex, "index", "0", "instance id or name")

	rootCmd.AddCommand(listCmd, statusCmd, isrunningCmd)
}
