package install

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"

	"ldx/internal/common"
	"ldx/internal/util"
)

// emulator process names whose executable path reveals the installation
// root.
var playerProcesses = []string{"dnplayer.exe", "dnmultiplayer.exe"}

// Discover locates an installation by scanning running emulator
// processes, falling back to the candidate roots (typically the paths
// recorded in the user config) when no emulator is running.
func Discover(ctx context.Context, candidates []string) (*Attr, error) {
	if root, err := discoverProcess(ctx); err == nil {
		log.WithField("path", root).Debug("install: discovered from running process")
		return New(root)
	}

	for _, c := range candidates {
		a, err := New(c)
		if err != nil {
			log.WithField("path", c).Debug("install: candidate rejected")
			continue
		}
		return a, nil
	}
	return nil, common.ErrNoInstall
}

// discoverProcess finds the installation root from a running emulator
// process. Only meaningful on Windows, where the emulator runs.
func discoverProcess(ctx context.Context) (string, error) {
	if runtime.GOOS != "windows" {
		return "", common.ErrNoInstall
	}
	for _, name := range playerProcesses {
		query := fmt.Sprintf("name='%s'", name)
		out, code, err := util.RunCapture(ctx, "wmic", "process", "where", query,
			"get", "ExecutablePath", "/value")
		if err != nil || code != 0 {
			continue
		}
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			exe, ok := strings.CutPrefix(line, "ExecutablePath=")
			if !ok || exe == "" {
				continue
			}
			return filepath.Dir(exe), nil
		}
	}
	return "", common.ErrNoInstall
}
