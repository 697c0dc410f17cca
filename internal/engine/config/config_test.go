package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const validYAML = `
version: 1
defaults:
  timeout: 60s
  container: "oven/bun:1"
tools:
  - name: typecheck
    command: "bunx tsc --noEmit"
    parser: tsc
    config: tsconfig.json
  - name: lint
    command: "bunx oxlint --format json ."
    parser: lint-json
    timeout: 30s
  - name: test
    command: "bun test"
    parser: bun-test
`

func TestLoad_Valid(t *testing.T) {
	fs := newMockFS()
	fs.files["tsgate.yaml"] = []byte(validYAML)

	cfg, err := NewLoader(fs).Load(context.Background(), "tsgate.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(cfg.Tools))
	}

	tc := cfg.ToolByName("typecheck")
	if tc == nil {
		t.Fatal("expected typecheck tool")
	}
	if tc.Parser != "tsc" {
		t.Errorf("expected parser tsc, got %q", tc.Parser)
	}
	// Defaults fill in missing optional fields.
	if tc.Timeout != 60*time.Second {
		t.Errorf("expected default timeout, got %v", tc.Timeout)
	}
	if tc.Container != "oven/bun:1" {
		t.Errorf("expected default container, got %q", tc.Container)
	}

	// Explicit values win over defaults.
	if lint := cfg.ToolByName("lint"); lint.Timeout != 30*time.Second {
		t.Errorf("expected explicit timeout kept, got %v", lint.Timeout)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := NewLoader(newMockFS()).Load(context.Background(), "tsgate.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	fs := newMockFS()
	fs.files["tsgate.yaml"] = []byte("tools: [unclosed")

	_, err := NewLoader(fs).Load(context.Background(), "tsgate.yaml")
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ValidationCollectsAllErrors(t *testing.T) {
	fs := newMockFS()
	fs.files["tsgate.yaml"] = []byte(`
version: 1
tools:
  - name: typecheck
  - name: lint
    command: "bunx oxlint"
    parser: nonsense
  - command: "orphan"
`)

	_, err := NewLoader(fs).Load(context.Background(), "tsgate.yaml")
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"missing required field 'command'", "unknown parser", "missing required field 'name'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected joined error to mention %q, got %q", want, msg)
		}
	}
}

func TestLoad_DuplicateToolNames(t *testing.T) {
	fs := newMockFS()
	fs.files["tsgate.yaml"] = []byte(`
version: 1
tools:
  - name: lint
    command: "a"
  - name: lint
    command: "b"
`)

	_, err := NewLoader(fs).Load(context.Background(), "tsgate.yaml")
	if err == nil || !strings.Contains(err.Error(), "duplicate name") {
		t.Errorf("expected duplicate name error, got %v", err)
	}
}

func TestTool_ParserName(t *testing.T) {
	tool := Tool{}
	if tool.ParserName() != "generic" {
		t.Errorf("expected generic default, got %q", tool.ParserName())
	}

	tool.Parser = "tsc"
	if tool.ParserName() != "tsc" {
		t.Errorf("expected tsc, got %q", tool.ParserName())
	}
}

func TestTool_ResolveConfigPath(t *testing.T) {
	tool := Tool{Config: "tsconfig.json"}
	if got := tool.ResolveConfigPath("/proj"); got != "/proj/tsconfig.json" {
		t.Errorf("expected joined path, got %q", got)
	}

	tool.Config = "/abs/tsconfig.json"
	if got := tool.ResolveConfigPath("/proj"); got != "/abs/tsconfig.json" {
		t.Errorf("expected absolute path kept, got %q", got)
	}

	tool.Config = ""
	if got := tool.ResolveConfigPath("/proj"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
