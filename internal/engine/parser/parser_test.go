package parser

import (
	"context"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	p := NewTscParser()
	r.Register("tsc", p)

	if got := r.Get("tsc"); got != p {
		t.Error("expected registered parser")
	}
	if got := r.Get("missing"); got != nil {
		t.Error("expected nil for unknown parser")
	}
}

func TestRegistry_GetOrDefault(t *testing.T) {
	r := NewRegistry()

	p := r.GetOrDefault("missing")
	if _, ok := p.(*GenericParser); !ok {
		t.Errorf("expected generic fallback, got %T", p)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"tsc", "lint-json", "bun-test", "generic"} {
		if r.Get(name) == nil {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestGenericParser(t *testing.T) {
	p := NewGenericParser()

	res, err := p.Parse(context.Background(), []byte("whatever"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Passed {
		t.Error("exit 0 should pass")
	}

	res, err = p.Parse(context.Background(), []byte("boom\n"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Passed {
		t.Error("exit 1 should fail")
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Message != "boom" {
		t.Errorf("expected output as message, got %+v", res.Diagnostics)
	}
}

func TestGenericParser_NoOutput(t *testing.T) {
	p := NewGenericParser()
	res, _ := p.Parse(context.Background(), nil, 2)

	if len(res.Diagnostics) != 1 {
		t.Fatal("expected 1 diagnostic")
	}
	if res.Diagnostics[0].Message != "tool failed with no output" {
		t.Errorf("unexpected message: %q", res.Diagnostics[0].Message)
	}
}
