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
	"time"

	"github.com/spf13/cobra"

	"ldx/internal/history"
	"ldx/internal/userconf"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past console invocations",
}

var historyLimit int

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent console invocations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := history.Open(userconf.HistoryPath())
		if err != nil {
			return err
		}
		defer h.Close()

		rows, err := h.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCOMMAND\tARGS\tEXIT\tELAPSED")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\n",
				time.Unix(row.Timestamp, 0).Format("2006-01-02 15:04:05"),
				row.Command, row.Args, row.ExitCode, row.ElapsedMS)
		}
		return w.Flush()
	},
}

var historyKeep time.Duration

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete invocations older than the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := history.Open(userconf.HistoryPath())
		if err != nil {
			return err
		}
		defer h.Close()

		removed, err := h.Prune(cmd.Context(), historyKeep)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d entries\n", removed)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of entries")
	historyPruneCmd.Flags().DurationVar(&historyKeep, "keep", 30*24*time.Hour,
		"retention window")

	historyCmd.AddCommand(historyListCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
