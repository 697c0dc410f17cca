package sandbox

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
)

func TestGetOrCreate_Existing(t *testing.T) {
	mock := &MockRuntime{
		ListResp: []container.Summary{
			{ID: "existing-id", Labels: map[string]string{labelPoolKey: "dummy"}},
		},
	}
	p := NewPool(mock)

	id, err := p.GetOrCreate(context.Background(), "oven/bun:1", "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "existing-id" {
		t.Errorf("expected existing ID 'existing-id', got %q", id)
	}
}

func TestGetOrCreate_New(t *testing.T) {
	mock := &MockRuntime{
		ListResp:        []container.Summary{}, // No existing
		ImagePullReader: io.NopCloser(strings.NewReader("pulling...")),
		CreateResp:      container.CreateResponse{ID: "new-id"},
	}
	p := NewPool(mock)

	id, err := p.GetOrCreate(context.Background(), "oven/bun:1", "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "new-id" {
		t.Errorf("expected new ID 'new-id', got %q", id)
	}
}

func TestGetOrCreate_StartFailureRemovesContainer(t *testing.T) {
	mock := &MockRuntime{
		ImagePullReader: io.NopCloser(strings.NewReader("pulling...")),
		CreateResp:      container.CreateResponse{ID: "doomed-id"},
		StartErr:        errors.New("start failed"),
	}
	p := NewPool(mock)

	_, err := p.GetOrCreate(context.Background(), "oven/bun:1", "/proj")
	if err == nil {
		t.Fatal("expected error when start fails")
	}
	if len(mock.RemovedIDs) != 1 || mock.RemovedIDs[0] != "doomed-id" {
		t.Errorf("expected doomed container removed, got %v", mock.RemovedIDs)
	}
}

func TestCleanupStale(t *testing.T) {
	now := time.Now()

	mock := &MockRuntime{
		ListResp: []container.Summary{
			{
				ID: "stale-1",
				Labels: map[string]string{
					labelManaged:  "true",
					labelLastUsed: now.Add(-10 * time.Minute).Format(time.RFC3339),
				},
			},
			{
				ID: "fresh-1",
				Labels: map[string]string{
					labelManaged:  "true",
					labelLastUsed: now.Add(-1 * time.Minute).Format(time.RFC3339),
				},
			},
		},
	}
	p := NewPool(mock)

	count, err := p.CleanupStale(context.Background(), 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 1 {
		t.Errorf("expected 1 removed, got %d", count)
	}
	if len(mock.RemovedIDs) != 1 || mock.RemovedIDs[0] != "stale-1" {
		t.Errorf("expected only stale-1 removed, got %v", mock.RemovedIDs)
	}
}

func TestCleanupAll(t *testing.T) {
	mock := &MockRuntime{
		ListResp: []container.Summary{
			{ID: "c1", Labels: map[string]string{labelManaged: "true"}},
			{ID: "c2", Labels: map[string]string{labelManaged: "true"}},
		},
	}
	p := NewPool(mock)

	count, err := p.CleanupAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 2 {
		t.Errorf("expected 2 removed, got %d", count)
	}
}

func TestProjectMount_ReadOnly(t *testing.T) {
	m := projectMount("/path")
	if m.Type != mount.TypeBind {
		t.Errorf("expected bind mount, got %s", m.Type)
	}
	if !m.ReadOnly {
		t.Errorf("expected read-only")
	}
	if m.Source != "/path" {
		t.Errorf("expected source /path, got %s", m.Source)
	}
	if m.Target != "/workspace" {
		t.Errorf("expected target /workspace, got %s", m.Target)
	}
}

func TestTmpMount(t *testing.T) {
	m := tmpMount()
	if m.Type != mount.TypeTmpfs {
		t.Errorf("expected tmpfs mount, got %s", m.Type)
	}
	if m.Target != "/tmp" {
		t.Errorf("expected target /tmp, got %s", m.Target)
	}
}

func TestComputePoolKey_Stable(t *testing.T) {
	a := computePoolKey("oven/bun:1", "/proj")
	b := computePoolKey("oven/bun:1", "/proj")
	c := computePoolKey("oven/bun:1", "/other")

	if a != b {
		t.Error("expected identical inputs to produce identical keys")
	}
	if a == c {
		t.Error("expected different projects to produce different keys")
	}
}
