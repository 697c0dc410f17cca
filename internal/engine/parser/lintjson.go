package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// InternalParseErrorCode marks the synthetic diagnostic produced when the
// linter report cannot be decoded.
const InternalParseErrorCode = "lint/internal-parse-error"

// maxRawPrefix bounds how much raw input is embedded in the synthetic
// diagnostic for an unparseable report.
const maxRawPrefix = 200

// LintJSONParser normalizes the linter's JSON report into diagnostics.
//
// The report schema is the linter's own contract, not one this package
// defines:
//
//	{
//	  "diagnostics": [
//	    {"file": "...", "line": 1, "column": 2, "severity": "error",
//	     "category": "no-unused-vars", "message": "...", "advice": {...}}
//	  ],
//	  "summary": {"errors": 1, "warnings": 0}
//	}
type LintJSONParser struct{}

// NewLintJSONParser creates a new LintJSONParser.
func NewLintJSONParser() *LintJSONParser {
	return &LintJSONParser{}
}

type lintReport struct {
	Diagnostics []lintDiagnostic `json:"diagnostics"`
	Summary     *lintSummary     `json:"summary"`
}

type lintDiagnostic struct {
	File     string          `json:"file"`
	Line     int             `json:"line"`
	Column   int             `json:"column"`
	Severity string          `json:"severity"`
	Category string          `json:"category"`
	Message  string          `json:"message"`
	Advice   json.RawMessage `json:"advice"`
}

type lintSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Parse implements the Parser interface for the linter's JSON report.
//
// Unparseable input degrades to a single synthetic error diagnostic
// embedding a bounded prefix of the raw input; it never returns an error.
func (p *LintJSONParser) Parse(_ context.Context, output []byte, exitCode int) (*Result, error) {
	if len(bytes.TrimSpace(output)) == 0 {
		return &Result{Passed: exitCode == 0}, nil
	}

	// Decode only the first JSON value so trailing console noise after a
	// valid report does not break parsing.
	var report lintReport
	dec := json.NewDecoder(bytes.NewReader(output))
	if err := dec.Decode(&report); err != nil {
		return degradedLintResult(output), nil
	}

	var diags []Diagnostic
	errorCount := 0
	warningCount := 0

	for _, d := range report.Diagnostics {
		severity := strings.ToLower(d.Severity)
		switch severity {
		case SeverityError:
			errorCount++
		case SeverityWarning:
			warningCount++
		default:
			// info and unknown severities are dropped
			continue
		}

		diag := Diagnostic{
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
			Severity: severity,
			Code:     d.Category,
			Message:  d.Message,
			Tool:     "lint",
		}
		if len(d.Advice) > 0 && string(d.Advice) != "null" {
			diag.Suggestion = string(d.Advice)
		}
		diags = append(diags, diag)
	}

	// The report's own summary wins over derived counts when present.
	if report.Summary != nil {
		errorCount = report.Summary.Errors
		warningCount = report.Summary.Warnings
	}

	return &Result{
		Passed:       errorCount == 0,
		Diagnostics:  diags,
		ErrorCount:   errorCount,
		WarningCount: warningCount,
	}, nil
}

// degradedLintResult builds the fail-safe result for an undecodable report.
func degradedLintResult(output []byte) *Result {
	prefix := strings.TrimSpace(string(output))
	if len(prefix) > maxRawPrefix {
		// Back off to a rune boundary so the truncation never produces
		// invalid UTF-8 in the message.
		cut := maxRawPrefix
		for cut > 0 && !utf8.RuneStart(prefix[cut]) {
			cut--
		}
		prefix = prefix[:cut]
	}

	return &Result{
		Passed: false,
		Diagnostics: []Diagnostic{
			{
				Severity: SeverityError,
				Code:     InternalParseErrorCode,
				Message:  fmt.Sprintf("unparseable linter report: %s", prefix),
				Tool:     "lint",
			},
		},
		ErrorCount: 1,
	}
}
