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
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ldx/internal/cache"
	"ldx/internal/console"
	"ldx/internal/history"
	"ldx/internal/install"
	"ldx/internal/ldconfig"
	"ldx/internal/userconf"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version info for --version flag
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

// getVersionString returns the version string with build info
func getVersionString() string {
	buildDate := formatBuildDate(date)
	if strings.HasSuffix(version, "-dev") {
		// Dev build: include epoch and commit for troubleshooting
		return fmt.Sprintf("%s (%s, epoch: %s, commit: %s)", version, buildDate, date, commit)
	}
	// Prod build: version with date
	return fmt.Sprintf("%s (%s)", version, buildDate)
}

// formatBuildDate converts epoch timestamp to readable date
func formatBuildDate(epoch string) string {
	ts, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return epoch
	}
	return time.Unix(ts, 0).Format("2006-01-02")
}

var (
	verboseFlag bool
	installFlag string

	settings *userconf.Config
)

var rootCmd = &cobra.Command{
	Use:   "ldx",
	Short: "Manage LDPlayer emulator instances and their configuration",
	Long: `Manage LDPlayer emulator instances: dispatch console commands,
inspect and edit instance and global configuration files, and work with
settings profiles, keyboard mappings, and operation records.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		if verboseFlag {
			logrus.SetOutput(os.Stderr)
			logrus.SetLevel(logrus.DebugLevel)
		}

		if err := userconf.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		var err error
		settings, err = userconf.Load()
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	// Quiet by default; --verbose routes debug logging to stderr.
	logrus.SetOutput(io.Discard)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("ldx version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&installFlag, "install", "",
		"LDPlayer installation root (skips discovery)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// buildAttr resolves the installation to operate on: the --install flag
// if given, otherwise process discovery with the recorded roots as
// fallback.
func buildAttr(ctx context.Context) (*install.Attr, error) {
	if installFlag != "" {
		return install.New(installFlag)
	}
	return install.Discover(ctx, settings.Installs)
}

// buildClient creates the config-file client over the installation.
func buildClient(attr *install.Attr) *ldconfig.Client {
	fs := osfs.New("/")
	return ldconfig.NewClient(attr, cache.NewStore(fs, settings.CacheCapacity), fs)
}

// buildRunner creates the console runner, wiring the invocation history
// recorder when enabled. The returned cleanup closes the history
// database and is safe to call unconditionally.
func buildRunner(attr *install.Attr) (*console.Runner, func(), error) {
	r := console.NewRunner(attr).
		WithBatchInterval(time.Duration(settings.BatchInterval) * time.Second)

	if !settings.HistoryEnabled() {
		return r, func() {}, nil
	}
	h, err := history.Open(userconf.HistoryPath())
	if err != nil {
		// History is best-effort; a broken database never blocks commands.
		logrus.WithError(err).Debug("commands: history unavailable")
		return r, func() {}, nil
	}
	return r.WithRecorder(h), func() { h.Close() }, nil
}
