package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// TscParser parses `tsc --noEmit` console output.
//
// Each diagnostic is a single line of the form
//
//	src/app.ts(12,5): error TS2322: Type 'string' is not assignable ...
//
// Informational and summary lines do not match the pattern and are
// ignored. Duplicates are kept; order follows the input.
type TscParser struct{}

// NewTscParser creates a new TscParser.
func NewTscParser() *TscParser {
	return &TscParser{}
}

var tscDiagnosticRe = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): error (TS\d+): (.+)$`)

// Parse implements the Parser interface for tsc output. Empty or
// non-matching input yields an empty result, never an error.
func (p *TscParser) Parse(_ context.Context, output []byte, exitCode int) (*Result, error) {
	var diags []Diagnostic

	for _, raw := range strings.Split(string(output), "\n") {
		m := tscDiagnosticRe.FindStringSubmatch(strings.TrimRight(raw, "\r"))
		if m == nil {
			continue
		}

		line, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])

		diags = append(diags, Diagnostic{
			File:     m[1],
			Line:     line,
			Column:   col,
			Severity: SeverityError,
			Code:     m[4],
			Message:  m[5],
			Tool:     "tsc",
		})
	}

	return &Result{
		Passed:      len(diags) == 0 && exitCode == 0,
		Diagnostics: diags,
		ErrorCount:  len(diags),
	}, nil
}
