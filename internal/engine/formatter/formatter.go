// Package formatter handles formatting tool results for CLI, JSON, and
// SARIF output.
package formatter

import (
	"github.com/tsgate/tsgate/internal/engine/parser"
)

// ToolResult holds the result of executing a single tool adapter.
type ToolResult struct {
	Name         string              `json:"name"`
	Tool         string              `json:"tool"`
	Passed       bool                `json:"passed"`
	Skipped      bool                `json:"skipped,omitempty"`
	TimedOut     bool                `json:"timed_out,omitempty"`
	DurationMs   int64               `json:"duration_ms"`
	WorkDir      string              `json:"work_dir,omitempty"`
	ConfigPath   string              `json:"config_path,omitempty"`
	ErrorCount   int                 `json:"error_count"`
	WarningCount int                 `json:"warning_count,omitempty"`
	Diagnostics  []parser.Diagnostic `json:"diagnostics,omitempty"`
	Tests        *parser.TestSummary `json:"tests,omitempty"`
	SystemError  string              `json:"system_error,omitempty"`
	RawOutput    string              `json:"raw_output,omitempty"`
}

// RunResult holds the aggregated result of all tools in a run.
type RunResult struct {
	Passed     bool         `json:"passed"`
	DurationMs int64        `json:"duration_ms"`
	Tools      []ToolResult `json:"tools"`
}

// Formatter formats a RunResult into a human-readable or machine-readable string.
type Formatter interface {
	Format(result RunResult) string
}
