package console

import (
	"fmt"
	"strconv"
	"strings"

	"ldx/internal/util"
)

// InstanceMeta is one line of list2 output: runtime metadata for a
// configured emulator instance.
type InstanceMeta struct {
	ID               int
	Name             string
	TopWindowHandle  int
	BindWindowHandle int
	AndroidStarted   bool
	PID              int
	VBoxPID          int
}

// Alive reports whether the instance's player process still exists.
// list2 keeps reporting the last known PID after a crash.
func (m *InstanceMeta) Alive() bool {
	return m.AndroidStarted && util.IsProcessRunning(m.PID)
}

// Alias returns the metadata under every field-name convention callers
// use (camelCase, snake_case, abbreviated), for template-style output.
func (m *InstanceMeta) Alias() map[string]any {
	return map[string]any{
		"id":                 m.ID,
		"name":               m.Name,
		"top_window_handle":  m.TopWindowHandle,
		"twh":                m.TopWindowHandle,
		"topWindowHandle":    m.TopWindowHandle,
		"bind_window_handle": m.BindWindowHandle,
		"bwh":                m.BindWindowHandle,
		"bindWindowHandle":   m.BindWindowHandle,
		"android_started_int": func() int {
			if m.AndroidStarted {
				return 1
			}
			return 0
		}(),
		"isStarted":   m.AndroidStarted,
		"pid":         m.PID,
		"pid_of_vbox": m.VBoxPID,
		"vboxPid":     m.VBoxPID,
		"pidOfVbox":   m.VBoxPID,
	}
}

// ParseNames splits the output of list/runninglist: one instance name
// per line.
func ParseNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// ParseList2 parses list2 output. Each line is seven comma-separated
// fields: id, name, top window handle, bind window handle, android
// started flag, player pid, vbox pid. Instance names may not contain
// commas, so a plain split is safe.
func ParseList2(out string) ([]InstanceMeta, error) {
	var metas []InstanceMeta
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 7 {
			return nil, fmt.Errorf("malformed list2 line %q: want 7 fields, got %d", line, len(fields))
		}
		nums := make([]int, 7)
		for i, f := range fields {
			if i == 1 {
				continue // name
			}
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("malformed list2 line %q: field %d: %v", line, i, err)
			}
			nums[i] = n
		}
		metas = append(metas, InstanceMeta{
			ID:               nums[0],
			Name:             fields[1],
			TopWindowHandle:  nums[2],
			BindWindowHandle: nums[3],
			AndroidStarted:   nums[4] == 1,
			PID:              nums[5],
			VBoxPID:          nums[6],
		})
	}
	return metas, nil
}
