package formatter

import (
	"bytes"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/tsgate/tsgate/internal/engine/parser"
)

const informationURI = "https://github.com/tsgate/tsgate"

// SARIFFormatter outputs diagnostics as a SARIF 2.1.0 report, one run per
// tool, so results feed straight into code-scanning UIs. Test failures are
// reported as error-level results located at their resolved file/line.
type SARIFFormatter struct{}

// NewSARIFFormatter creates a new SARIFFormatter.
func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{}
}

// Format returns the RunResult as a SARIF JSON document.
func (f *SARIFFormatter) Format(result RunResult) string {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return `{"error": "failed to create SARIF report"}`
	}

	for _, tr := range result.Tools {
		run := sarif.NewRunWithInformationURI(tr.Name, informationURI)

		for _, d := range tr.Diagnostics {
			addResult(run, d)
		}

		if tr.Tests != nil {
			for _, fail := range tr.Tests.Failures {
				addResult(run, parser.Diagnostic{
					File:     fail.File,
					Line:     fail.Line,
					Severity: parser.SeverityError,
					Code:     "test-failure",
					Message:  fail.Message,
				})
			}
		}

		report.AddRun(run)
	}

	var buf bytes.Buffer
	if err := report.PrettyWrite(&buf); err != nil {
		return `{"error": "failed to serialize SARIF report"}`
	}
	return buf.String()
}

func addResult(run *sarif.Run, d parser.Diagnostic) {
	ruleID := d.Code
	if ruleID == "" {
		ruleID = "diagnostic"
	}

	res := run.CreateResultForRule(ruleID).
		WithLevel(sarifLevel(d.Severity)).
		WithMessage(sarif.NewTextMessage(d.Message))

	if d.File != "" {
		region := sarif.NewSimpleRegion(d.Line, d.Line)
		if d.Column > 0 {
			region = region.WithStartColumn(d.Column)
		}
		res.AddLocation(
			sarif.NewLocationWithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(d.File)).
					WithRegion(region),
			),
		)
	}
}

// sarifLevel maps our severities to SARIF levels.
func sarifLevel(severity string) string {
	switch severity {
	case parser.SeverityError:
		return "error"
	case parser.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
