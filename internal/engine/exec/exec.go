// Package exec runs wrapped tools as local subprocesses with a timeout.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"time"

	"github.com/tsgate/tsgate/internal/platform/logger"
)

// Result holds the outcome of a tool invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Combined returns stdout followed by stderr as one blob, the shape the
// parsers consume.
func (r *Result) Combined() []byte {
	out := make([]byte, 0, len(r.Stdout)+len(r.Stderr))
	out = append(out, r.Stdout...)
	out = append(out, r.Stderr...)
	return out
}

// Runner executes a shell command in a working directory with a timeout.
type Runner interface {
	Run(ctx context.Context, workDir, command string, timeout time.Duration) (*Result, error)
}

// Local runs commands on the host via sh -c.
type Local struct{}

// NewLocal creates a new Local runner.
func NewLocal() *Local {
	return &Local{}
}

// Run executes the command and captures its output. A timeout produces a
// Result with TimedOut set rather than an error; errors are reserved for
// spawn failures (command not found, permission denied).
func (l *Local) Run(ctx context.Context, workDir, command string, timeout time.Duration) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("running tool", "command", command, "dir", workDir, "timeout", timeout)
	start := time.Now()

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := osexec.CommandContext(runCtx, "sh", "-c", command) // #nosec G204 -- the command comes from the project's own config file
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		log.Warn("tool timed out", "command", command, "timeout", timeout)
		return result, nil
	}

	if err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			log.Debug("tool exited non-zero", "command", command, "exit_code", result.ExitCode)
			return result, nil
		}
		return nil, fmt.Errorf("running %q: %w", command, err)
	}

	result.ExitCode = 0
	log.Debug("tool completed", "command", command, "duration", result.Duration)
	return result, nil
}
