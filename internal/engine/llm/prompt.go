package llm

import (
	"fmt"
	"strings"

	"github.com/tsgate/tsgate/internal/engine/parser"
)

const promptTemplate = `You are helping a developer understand diagnostics from their TypeScript toolchain. For each diagnostic below, explain the error in plain language and suggest a concrete fix. Respond ONLY with a JSON array matching the required schema, one entry per diagnostic, with file and line copied exactly from the input.
If you cannot explain a diagnostic, omit it.

Diagnostics:
%s`

// maxPromptDiagnostics caps the number of diagnostics included in a prompt
// to keep requests within token limits.
const maxPromptDiagnostics = 20

// BuildPrompt constructs an explain prompt from diagnostics.
func BuildPrompt(diags []parser.Diagnostic) string {
	if len(diags) > maxPromptDiagnostics {
		diags = diags[:maxPromptDiagnostics]
	}

	var sb strings.Builder
	for _, d := range diags {
		sb.WriteString(fmt.Sprintf("- %s:%d:%d [%s] %s: %s\n", d.File, d.Line, d.Column, d.Severity, d.Code, d.Message))
	}

	return fmt.Sprintf(promptTemplate, sb.String())
}
