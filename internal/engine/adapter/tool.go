package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/exec"
	"github.com/tsgate/tsgate/internal/engine/formatter"
	"github.com/tsgate/tsgate/internal/engine/parser"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

const defaultTimeout = 30 * time.Second

// ToolAdapter executes one configured tool and parses its output.
// The runner decides where the command runs (host or sandbox); the adapter
// only cares about the combined output and exit code.
type ToolAdapter struct {
	cfg     config.Tool
	runner  exec.Runner
	parser  parser.Parser
	workDir string
}

// NewToolAdapter creates a new ToolAdapter.
func NewToolAdapter(cfg config.Tool, runner exec.Runner, prs parser.Parser, workDir string) *ToolAdapter {
	return &ToolAdapter{
		cfg:     cfg,
		runner:  runner,
		parser:  prs,
		workDir: workDir,
	}
}

// Execute runs the tool, parses the output, and returns the result.
// System faults (spawn failure, timeout, parser fault) are reported as data
// on the result, never as a control-flow error.
func (a *ToolAdapter) Execute(ctx context.Context) (*formatter.ToolResult, error) {
	log := logger.FromContext(ctx)
	log.Info("ToolAdapter.Execute started", "tool", a.cfg.Name)
	start := time.Now()

	result := &formatter.ToolResult{
		Name:       a.cfg.Name,
		Tool:       a.cfg.ParserName(),
		WorkDir:    a.workDir,
		ConfigPath: a.cfg.ResolveConfigPath(a.workDir),
	}

	timeout := a.cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	run, err := a.runner.Run(ctx, a.workDir, a.cfg.Command, timeout)
	if err != nil {
		result.SystemError = fmt.Sprintf("execution failed: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	result.TimedOut = run.TimedOut
	result.RawOutput = string(run.Combined())

	// Even a timed-out or crashed run gets parsed: whatever output exists
	// may still carry usable diagnostics.
	parsed, err := a.parser.Parse(ctx, run.Combined(), run.ExitCode)
	if err != nil {
		result.SystemError = fmt.Sprintf("parser error: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	result.Passed = parsed.Passed && !run.TimedOut
	result.Diagnostics = parser.EnrichHints(parsed.Diagnostics)
	result.ErrorCount = parsed.ErrorCount
	result.WarningCount = parsed.WarningCount
	result.Tests = parsed.Tests

	result.DurationMs = time.Since(start).Milliseconds()
	log.Info("ToolAdapter.Execute completed",
		"tool", a.cfg.Name,
		"passed", result.Passed,
		"errors", result.ErrorCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}
