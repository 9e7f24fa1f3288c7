package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"ldx/internal/common"
	"ldx/internal/install"
	"ldx/internal/util"
)

// Recorder receives a record of every console invocation.
// Implemented by history.DB; a nil Recorder disables recording.
type Recorder interface {
	RecordConsole(ctx context.Context, command string, args []string, exitCode int, elapsed time.Duration) error
}

// Runner invokes the ldconsole executable of one installation.
type Runner struct {
	attr     *install.Attr
	recorder Recorder
	interval time.Duration // pause between batch dispatches
}

// NewRunner creates a runner for the given installation.
func NewRunner(attr *install.Attr) *Runner {
	return &Runner{attr: attr, interval: 5 * time.Second}
}

// WithRecorder sets the invocation recorder. Recording is best-effort:
// a recorder failure never fails the command.
func (r *Runner) WithRecorder(rec Recorder) *Runner {
	r.recorder = rec
	return r
}

// WithBatchInterval sets the pause between batch dispatches.
func (r *Runner) WithBatchInterval(d time.Duration) *Runner {
	if d > 0 {
		r.interval = d
	}
	return r
}

// Exec runs one console command and returns its combined output.
// Unknown commands are rejected before spawning anything.
func (r *Runner) Exec(ctx context.Context, command string, args ...string) (string, error) {
	if !IsKnown(command) {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownCmd, command)
	}

	argv := append([]string{command}, args...)
	start := time.Now()
	out, code, err := util.RunCapture(ctx, r.attr.LDConsole(), argv...)
	elapsed := time.Since(start)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"command": command,
		"exit":    code,
		"elapsed": elapsed,
	}).Debug("console: executed")

	if r.recorder != nil {
		if recErr := r.recorder.RecordConsole(ctx, command, args, code, elapsed); recErr != nil {
			log.WithError(recErr).Debug("console: history record failed")
		}
	}

	if code != 0 {
		return out, fmt.Errorf("ldconsole %s exited with code %d: %s",
			command, code, strings.TrimSpace(out))
	}
	return out, nil
}

// ExecIndex runs a command against a single instance id.
func (r *Runner) ExecIndex(ctx context.Context, command string, id int, args ...string) (string, error) {
	argv := append([]string{"--index", strconv.Itoa(id)}, args...)
	return r.Exec(ctx, command, argv...)
}

// ExecBatch dispatches a batchable command to each instance id in turn,
// pausing between dispatches so the emulator host is not overwhelmed.
// Returns the output per id; stops at the first failure.
func (r *Runner) ExecBatch(ctx context.Context, command string, ids []int, args ...string) (map[int]string, error) {
	if !IsBatchable(command) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotBatchable, command)
	}

	outputs := make(map[int]string, len(ids))
	for i, id := range ids {
		if i > 0 {
			select {
			case <-ctx.Done():
				return outputs, ctx.Err()
			case <-time.After(r.interval):
			}
		}
		out, err := r.ExecIndex(ctx, command, id, args...)
		if err != nil {
			return outputs, fmt.Errorf("batch %s on instance %d: %w", command, id, err)
		}
		outputs[id] = out
	}
	return outputs, nil
}

// IsRunning reports whether the instance's Android system is up.
func (r *Runner) IsRunning(ctx context.Context, id int) (bool, error) {
	out, err := r.ExecIndex(ctx, "isrunning", id)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(out), "running"), nil
}

// WaitRunning polls until the instance reports running or cfg times out.
func (r *Runner) WaitRunning(ctx context.Context, id int, cfg util.PollConfig) error {
	return util.PollUntil(ctx, cfg, func() bool {
		running, err := r.IsRunning(ctx, id)
		return err == nil && running
	})
}

// List returns the configured instance names.
func (r *Runner) List(ctx context.Context) ([]string, error) {
	out, err := r.Exec(ctx, "list")
	if err != nil {
		return nil, err
	}
	return ParseNames(out), nil
}

// RunningList returns the names of running instances.
func (r *Runner) RunningList(ctx context.Context) ([]string, error) {
	out, err := r.Exec(ctx, "runninglist")
	if err != nil {
		return nil, err
	}
	return ParseNames(out), nil
}

// List2 returns per-instance runtime metadata.
func (r *Runner) List2(ctx context.Context) ([]InstanceMeta, error) {
	out, err := r.Exec(ctx, "list2")
	if err != nil {
		return nil, err
	}
	return ParseList2(out)
}
