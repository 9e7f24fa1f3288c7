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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ldx/internal/common"
	"ldx/internal/ldconfig"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Work with settings profiles (.smp files)",
}

var profileRecommended bool

func buildProfiles(cmd *cobra.Command) (*ldconfig.ProfileFiles, error) {
	attr, err := buildAttr(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ldconfig.NewProfileFiles(buildClient(attr)), nil
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customized profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := buildProfiles(cmd)
		if err != nil {
			return err
		}
		names, err := profiles.ListCustomize()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := buildProfiles(cmd)
		if err != nil {
			return err
		}
		get := profiles.GetCustomize
		if profileRecommended {
			get = profiles.GetRecommended
		}
		p, err := get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(p, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var profileCopyCmd = &cobra.Command{
	Use:   "copy <name> <new-name>",
	Short: "Copy a profile under a new name",
	Long: `Copy a profile under a new name. The source is looked up among the
customized profiles first, then among the recommended ones, so a vendor
profile can be copied into the customized set and edited there.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := buildProfiles(cmd)
		if err != nil {
			return err
		}
		p, err := profiles.GetCustomize(cmd.Context(), args[0])
		if errors.Is(err, common.ErrNotFound) {
			p, err = profiles.GetRecommended(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}
		return profiles.Dump(args[1], p)
	},
}

func init() {
	profileShowCmd.Flags().BoolVar(&profileRecommended, "recommended", false,
		"look up the vendor-recommended profile instead of the customized one")

	profileCmd.AddCommand(profileListCmd, profileShowCmd, profileCopyCmd)
	rootCmd.AddCommand(profileCmd)
}
