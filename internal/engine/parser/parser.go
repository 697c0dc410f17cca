// Package parser converts raw tool output into structured diagnostics.
//
// All parsers are pure functions over a fully buffered output blob: they
// perform no I/O, keep no state between calls, and degrade to best-effort
// structured results instead of returning faults. Malformed or noisy tool
// output must always yield something a caller can render.
package parser

import (
	"context"
	"sync"
)

// Severity levels for diagnostics.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic represents a single issue reported by a wrapped tool.
type Diagnostic struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Column     int    `json:"column,omitempty"`
	Severity   string `json:"severity"` // error, warning, info
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Hint       string `json:"hint,omitempty"`
	Tool       string `json:"tool"`
}

// TestFailure describes one failing test case extracted from runner output.
// File stays "unknown" until a stack frame resolves a location.
type TestFailure struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// TestSummary aggregates a test run. Passed/Failed come from the runner's
// trailer line when one exists; Failures is the best-effort detailed list
// and its length need not equal Failed.
type TestSummary struct {
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Total    int           `json:"total"`
	Failures []TestFailure `json:"failures,omitempty"`
}

// Result holds the outcome of a parser execution.
type Result struct {
	Passed       bool
	Diagnostics  []Diagnostic
	ErrorCount   int
	WarningCount int
	Tests        *TestSummary
}

// Parser parses combined tool output (stdout followed by stderr) into a
// structured Result. Implementations never fail on malformed input; the
// error return exists for test doubles and future parsers, and is always
// nil for the built-in parsers.
type Parser interface {
	Parse(ctx context.Context, output []byte, exitCode int) (*Result, error)
}

// Registry manages available parsers by name.
type Registry struct {
	parsers map[string]Parser
	mu      sync.RWMutex
}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
	}
}

// Register adds a parser to the registry.
func (r *Registry) Register(name string, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[name] = p
}

// Get returns a parser by name. Returns nil if not found.
func (r *Registry) Get(name string) Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parsers[name]
}

// GetOrDefault returns a parser by name, or the generic parser if not found.
func (r *Registry) GetOrDefault(name string) Parser {
	p := r.Get(name)
	if p != nil {
		return p
	}
	return NewGenericParser()
}

// DefaultRegistry returns a registry with all built-in parsers registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("tsc", NewTscParser())
	r.Register("lint-json", NewLintJSONParser())
	r.Register("bun-test", NewBunTestParser())
	r.Register("generic", NewGenericParser())
	return r
}
