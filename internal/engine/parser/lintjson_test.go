package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLintJSONParser_ValidReport(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "lint_report.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	p := NewLintJSONParser()
	res, err := p.Parse(context.Background(), data, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Passed {
		t.Error("expected failed")
	}

	// The info diagnostic is dropped.
	if len(res.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(res.Diagnostics))
	}

	d1 := res.Diagnostics[0]
	if d1.Severity != SeverityError || d1.Code != "no-unused-vars" {
		t.Errorf("unexpected first diagnostic: %+v", d1)
	}
	if d1.File != "src/app.ts" || d1.Line != 10 {
		t.Errorf("unexpected location: %s:%d", d1.File, d1.Line)
	}
	if !strings.Contains(d1.Suggestion, "remove the declaration") {
		t.Errorf("expected serialized advice payload, got %q", d1.Suggestion)
	}

	d2 := res.Diagnostics[1]
	if d2.Severity != SeverityWarning || d2.Code != "no-console" {
		t.Errorf("unexpected second diagnostic: %+v", d2)
	}
	if d2.Suggestion != "" {
		t.Errorf("expected no advice, got %q", d2.Suggestion)
	}

	// Counts come from the report's own summary.
	if res.ErrorCount != 1 || res.WarningCount != 1 {
		t.Errorf("expected counts 1/1, got %d/%d", res.ErrorCount, res.WarningCount)
	}
}

func TestLintJSONParser_CountsDerivedWithoutSummary(t *testing.T) {
	data := []byte(`{"diagnostics":[
		{"file":"a.ts","line":1,"severity":"error","category":"no-undef","message":"x"},
		{"file":"b.ts","line":2,"severity":"info","category":"style/semi","message":"y"}
	]}`)

	p := NewLintJSONParser()
	res, err := p.Parse(context.Background(), data, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ErrorCount != 1 {
		t.Errorf("expected error_count 1 (info dropped), got %d", res.ErrorCount)
	}
	if res.WarningCount != 0 {
		t.Errorf("expected warning_count 0, got %d", res.WarningCount)
	}
}

func TestLintJSONParser_InvalidJSONNeverRaises(t *testing.T) {
	p := NewLintJSONParser()
	res, err := p.Parse(context.Background(), []byte("not json { at all"), 1)
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}

	if res.Passed {
		t.Error("expected failed")
	}
	if res.ErrorCount != 1 || len(res.Diagnostics) != 1 {
		t.Fatalf("expected exactly one synthetic diagnostic, got %+v", res)
	}

	d := res.Diagnostics[0]
	if d.Code != InternalParseErrorCode {
		t.Errorf("expected internal parse error code, got %q", d.Code)
	}
	if !strings.Contains(d.Message, "not json") {
		t.Errorf("expected raw input prefix in message, got %q", d.Message)
	}
}

func TestLintJSONParser_RawPrefixIsBounded(t *testing.T) {
	raw := strings.Repeat("x", 5000)

	p := NewLintJSONParser()
	res, _ := p.Parse(context.Background(), []byte(raw), 1)

	if len(res.Diagnostics[0].Message) > maxRawPrefix+64 {
		t.Errorf("synthetic message too long: %d bytes", len(res.Diagnostics[0].Message))
	}
}

func TestLintJSONParser_TrailingNoiseAfterReport(t *testing.T) {
	data := []byte(`{"diagnostics":[],"summary":{"errors":0,"warnings":0}}` + "\nwarning: deprecated flag --format\n")

	p := NewLintJSONParser()
	res, err := p.Parse(context.Background(), data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Passed {
		t.Errorf("trailing console noise broke a valid report: %+v", res)
	}
}

func TestLintJSONParser_EmptyInput(t *testing.T) {
	p := NewLintJSONParser()
	res, err := p.Parse(context.Background(), []byte("   "), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Passed || len(res.Diagnostics) != 0 {
		t.Errorf("expected clean empty result, got %+v", res)
	}
}

func TestLintJSONParser_RawPrefixKeepsRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the truncation point must not be split
	// into invalid UTF-8.
	raw := strings.Repeat("x", maxRawPrefix-1) + "é and more unparseable tail"

	p := NewLintJSONParser()
	res, _ := p.Parse(context.Background(), []byte(raw), 1)

	msg := res.Diagnostics[0].Message
	if !utf8.ValidString(msg) {
		t.Errorf("synthetic message contains invalid UTF-8: %q", msg)
	}
	if strings.Contains(msg, "é") {
		t.Errorf("expected straddling rune dropped, got %q", msg)
	}
}
