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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ldx/internal/ldconfig"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Work with operation records (.record macros)",
}

func buildRecords(cmd *cobra.Command) (*ldconfig.RecordFiles, error) {
	attr, err := buildAttr(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ldconfig.NewRecordFiles(buildClient(attr)), nil
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded macros",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := buildRecords(cmd)
		if err != nil {
			return err
		}
		names, err := records.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var recordShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a recorded macro as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := buildRecords(cmd)
		if err != nil {
			return err
		}
		r, err := records.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(r, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	recordCmd.AddCommand(recordListCmd, recordShowCmd)
	rootCmd.AddCommand(recordCmd)
}
