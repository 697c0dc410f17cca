package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/exec"
	"github.com/tsgate/tsgate/internal/engine/parser"
)

// mockRunner is a test double for exec.Runner.
type mockRunner struct {
	result  *exec.Result
	err     error
	gotDir  string
	gotCmd  string
	gotWait time.Duration
}

func (m *mockRunner) Run(_ context.Context, workDir, command string, timeout time.Duration) (*exec.Result, error) {
	m.gotDir = workDir
	m.gotCmd = command
	m.gotWait = timeout
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestToolAdapter_CombinesOutputAndParses(t *testing.T) {
	runner := &mockRunner{
		result: &exec.Result{
			Stdout:   []byte("src/a.ts(1,2): error TS2304: Cannot find name 'x'.\n"),
			Stderr:   []byte("some stderr chatter\n"),
			ExitCode: 2,
		},
	}

	cfg := config.Tool{
		Name:    "typecheck",
		Command: "bunx tsc --noEmit",
		Parser:  "tsc",
		Config:  "tsconfig.json",
		Timeout: 45 * time.Second,
	}

	a := NewToolAdapter(cfg, runner, parser.NewTscParser(), "/proj")
	res, err := a.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runner.gotDir != "/proj" || runner.gotCmd != "bunx tsc --noEmit" {
		t.Errorf("runner called with %q %q", runner.gotDir, runner.gotCmd)
	}
	if runner.gotWait != 45*time.Second {
		t.Errorf("expected configured timeout, got %v", runner.gotWait)
	}

	if res.Passed {
		t.Error("expected failed")
	}
	if res.ErrorCount != 1 {
		t.Errorf("expected 1 error, got %d", res.ErrorCount)
	}
	if res.ConfigPath != "/proj/tsconfig.json" {
		t.Errorf("expected resolved config path, got %q", res.ConfigPath)
	}
	if res.WorkDir != "/proj" {
		t.Errorf("expected work dir echoed, got %q", res.WorkDir)
	}
	// Hints from the static database are attached.
	if res.Diagnostics[0].Hint == "" {
		t.Error("expected enriched hint for TS2304")
	}
	// Raw output is stdout then stderr.
	if !strings.HasPrefix(res.RawOutput, "src/a.ts") || !strings.Contains(res.RawOutput, "stderr chatter") {
		t.Errorf("unexpected raw output: %q", res.RawOutput)
	}
}

func TestToolAdapter_SpawnFailureIsSystemError(t *testing.T) {
	runner := &mockRunner{err: errors.New("sh: not found")}
	cfg := config.Tool{Name: "lint", Command: "whatever"}

	a := NewToolAdapter(cfg, runner, parser.NewGenericParser(), "/proj")
	res, err := a.Execute(context.Background())
	if err != nil {
		t.Fatalf("expected system error on the result, got %v", err)
	}

	if res.SystemError == "" {
		t.Error("expected SystemError set")
	}
	if res.Passed {
		t.Error("expected not passed")
	}
}

func TestToolAdapter_TimeoutStillParses(t *testing.T) {
	runner := &mockRunner{
		result: &exec.Result{
			Stdout:   []byte("✗ slow test\nerror: deadline\n"),
			ExitCode: -1,
			TimedOut: true,
		},
	}
	cfg := config.Tool{Name: "test", Command: "bun test", Parser: "bun-test"}

	a := NewToolAdapter(cfg, runner, parser.NewBunTestParser(), "/proj")
	res, err := a.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TimedOut {
		t.Error("expected TimedOut")
	}
	if res.Passed {
		t.Error("a timed-out run never passes")
	}
	if res.Tests == nil || len(res.Tests.Failures) != 1 {
		t.Error("expected partial output parsed")
	}
}

func TestToolAdapter_DefaultTimeout(t *testing.T) {
	runner := &mockRunner{result: &exec.Result{ExitCode: 0}}
	cfg := config.Tool{Name: "lint", Command: "x"}

	a := NewToolAdapter(cfg, runner, parser.NewGenericParser(), "/proj")
	if _, err := a.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runner.gotWait != defaultTimeout {
		t.Errorf("expected default timeout, got %v", runner.gotWait)
	}
}

func TestFactory_CreateAllPreservesOrder(t *testing.T) {
	f := NewFactory(&mockRunner{result: &exec.Result{}}, parser.DefaultRegistry(), "/proj")
	tools := []config.Tool{
		{Name: "typecheck", Command: "a", Parser: "tsc"},
		{Name: "lint", Command: "b", Parser: "lint-json"},
		{Name: "test", Command: "c", Parser: "bun-test"},
	}

	adapters, err := f.CreateAll(tools)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adapters) != 3 {
		t.Fatalf("expected 3 adapters, got %d", len(adapters))
	}
}

func TestFactory_ProviderSelectsRunnerPerTool(t *testing.T) {
	local := &mockRunner{result: &exec.Result{ExitCode: 0}}
	sandboxed := &mockRunner{result: &exec.Result{ExitCode: 0}}
	provider := func(image string) exec.Runner {
		if image != "" {
			return sandboxed
		}
		return local
	}

	f := NewFactoryWithProvider(provider, parser.DefaultRegistry(), "/proj")

	hostTool := f.Create(config.Tool{Name: "typecheck", Command: "tsc"})
	ctrTool := f.Create(config.Tool{Name: "test", Command: "bun test", Container: "oven/bun:1"})

	if _, err := hostTool.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ctrTool.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if local.gotCmd != "tsc" {
		t.Errorf("expected host tool on local runner, got %q", local.gotCmd)
	}
	if sandboxed.gotCmd != "bun test" {
		t.Errorf("expected container tool on sandbox runner, got %q", sandboxed.gotCmd)
	}
}
