package formatter

import (
	"fmt"
	"strings"

	"github.com/tsgate/tsgate/internal/engine/parser"
)

// ANSI color codes.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiDim    = "\033[2m"
)

// CLIFormatter outputs RunResult as a human-readable CLI report.
type CLIFormatter struct {
	Color   bool
	Verbose bool
}

// NewCLIFormatter creates a new CLIFormatter.
func NewCLIFormatter(color, verbose bool) *CLIFormatter {
	return &CLIFormatter{Color: color, Verbose: verbose}
}

// Format returns a formatted CLI report.
func (f *CLIFormatter) Format(result RunResult) string {
	var b strings.Builder

	icon := f.colorize("✅", ansiGreen)
	status := "passed"
	if !result.Passed {
		icon = f.colorize("❌", ansiRed)
		status = "failed"
	}
	b.WriteString(fmt.Sprintf("\n%s %s — %s in %dms\n\n",
		icon,
		f.colorize("tsgate", ansiBold),
		status,
		result.DurationMs))

	for _, tr := range result.Tools {
		toolIcon := f.toolIcon(tr)
		duration := fmt.Sprintf("%dms", tr.DurationMs)

		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			toolIcon,
			f.colorize(tr.Name, ansiBold),
			f.colorize(duration, ansiDim)))

		if tr.SystemError != "" {
			b.WriteString(fmt.Sprintf("    💥 %s\n", f.colorize(tr.SystemError, ansiRed)))
		}
		if tr.TimedOut {
			b.WriteString(fmt.Sprintf("    ⏱️ %s\n", f.colorize("timed out", ansiRed)))
		}

		for _, d := range tr.Diagnostics {
			f.writeDiagnostic(&b, d)
		}

		if tr.Tests != nil {
			f.writeTests(&b, tr.Tests)
		}

		if f.Verbose && tr.RawOutput != "" {
			b.WriteString(fmt.Sprintf("\n    %s\n", f.colorize("--- raw output ---", ansiDim)))
			for _, line := range strings.Split(tr.RawOutput, "\n") {
				b.WriteString(fmt.Sprintf("    %s\n", f.colorize(line, ansiDim)))
			}
		}
	}

	return b.String()
}

func (f *CLIFormatter) writeDiagnostic(b *strings.Builder, d parser.Diagnostic) {
	loc := ""
	if d.File != "" {
		loc = d.File
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Line)
			if d.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, d.Column)
			}
		}
		loc = f.colorize(loc, ansiCyan) + " "
	}

	sevIcon := "ℹ️"
	sevColor := ansiDim
	switch d.Severity {
	case parser.SeverityError:
		sevIcon = "❌"
		sevColor = ansiRed
	case parser.SeverityWarning:
		sevIcon = "⚠️"
		sevColor = ansiYellow
	}

	code := ""
	if d.Code != "" {
		code = f.colorize("["+d.Code+"]", ansiDim) + " "
	}

	b.WriteString(fmt.Sprintf("    %s %s%s%s\n", sevIcon, loc, code, f.colorize(d.Message, sevColor)))

	if d.Hint != "" {
		b.WriteString(fmt.Sprintf("      💡 %s\n", d.Hint))
	}
}

func (f *CLIFormatter) writeTests(b *strings.Builder, s *parser.TestSummary) {
	b.WriteString(fmt.Sprintf("    %s\n",
		f.colorize(fmt.Sprintf("%d passed, %d failed, %d total", s.Passed, s.Failed, s.Total), ansiDim)))

	for _, fail := range s.Failures {
		loc := fail.File
		if fail.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, fail.Line)
		}
		b.WriteString(fmt.Sprintf("    ❌ %s\n", f.colorize(loc, ansiCyan)))

		for _, line := range strings.Split(fail.Message, "\n") {
			b.WriteString(fmt.Sprintf("       %s\n", f.colorize(line, ansiRed)))
		}
		if f.Verbose && fail.Stack != "" {
			for _, line := range strings.Split(fail.Stack, "\n") {
				b.WriteString(fmt.Sprintf("       %s\n", f.colorize(line, ansiDim)))
			}
		}
	}
}

func (f *CLIFormatter) toolIcon(tr ToolResult) string {
	if tr.Skipped {
		return "⏭️"
	}
	if tr.SystemError != "" {
		return "💥"
	}
	if tr.Passed {
		return f.colorize("✅", ansiGreen)
	}
	return f.colorize("❌", ansiRed)
}

func (f *CLIFormatter) colorize(s, code string) string {
	if !f.Color {
		return s
	}
	return code + s + ansiReset
}
