package parser

import (
	"context"
	"strings"
)

// GenericParser is a fallback parser for tools without structured output.
// It relies solely on the exit code.
type GenericParser struct{}

// NewGenericParser creates a new GenericParser.
func NewGenericParser() *GenericParser {
	return &GenericParser{}
}

// Parse implements the Parser interface.
// If exitCode is 0, returns passed.
// If exitCode is non-zero, returns failed with the output as message.
func (p *GenericParser) Parse(_ context.Context, output []byte, exitCode int) (*Result, error) {
	if exitCode == 0 {
		return &Result{Passed: true}, nil
	}

	msg := strings.TrimSpace(string(output))
	if msg == "" {
		msg = "tool failed with no output"
	}

	return &Result{
		Passed: false,
		Diagnostics: []Diagnostic{
			{
				Severity: SeverityError,
				Message:  msg,
				Tool:     "generic",
			},
		},
		ErrorCount: 1,
	}, nil
}
