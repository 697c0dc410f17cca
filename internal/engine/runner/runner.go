// Package runner provides the parallel execution engine for tool adapters.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/tsgate/tsgate/internal/engine/adapter"
	"github.com/tsgate/tsgate/internal/engine/formatter"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

// Engine orchestrates parallel adapter execution.
type Engine struct {
	// Progress is an optional progress tracker. If nil, no progress output is produced.
	Progress *Progress
}

// NewEngine creates a new execution engine.
func NewEngine() *Engine {
	return &Engine{}
}

// NewEngineWithProgress creates a new execution engine with progress tracking.
func NewEngineWithProgress(p *Progress) *Engine {
	return &Engine{Progress: p}
}

// RunAll executes all adapters in parallel and collects results in input order.
// If failFast is true, remaining adapters are cancelled when any tool fails.
// names provides human-readable names for progress tracking (must match adapters length).
func (e *Engine) RunAll(ctx context.Context, adapters []adapter.Adapter, failFast bool, names []string) (*formatter.RunResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Engine.RunAll started", "tools", len(adapters), "fail_fast", failFast)
	start := time.Now()

	if len(adapters) == 0 {
		return &formatter.RunResult{Passed: true, DurationMs: 0}, nil
	}

	// Cancellable context for fail-fast support.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type indexedResult struct {
		idx    int
		result *formatter.ToolResult
		err    error
	}

	resultsCh := make(chan indexedResult, len(adapters))
	var wg sync.WaitGroup

	for i, a := range adapters {
		wg.Add(1)
		go func(idx int, a adapter.Adapter) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				// Cancelled before starting (fail-fast). Report the tool
				// as skipped so the result accounts for every tool.
				name := ""
				if idx < len(names) {
					name = names[idx]
				}
				resultsCh <- indexedResult{idx: idx, result: &formatter.ToolResult{Name: name, Skipped: true}}
				return
			default:
			}

			if e.Progress != nil && idx < len(names) {
				e.Progress.OnStart(names[idx])
			}

			toolStart := time.Now()
			result, err := a.Execute(ctx)
			toolDur := time.Since(toolStart)
			resultsCh <- indexedResult{idx: idx, result: result, err: err}

			if e.Progress != nil && result != nil {
				e.Progress.OnComplete(result.Name, result.Passed, result.SystemError != "", result.SystemError, toolDur)
			}

			if failFast && result != nil && !result.Passed {
				log.Info("fail-fast: cancelling remaining tools", "failed_tool", result.Name)
				cancel()
			}
		}(i, a)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	// Collect results in order.
	collected := make([]*formatter.ToolResult, len(adapters))
	for ir := range resultsCh {
		if ir.result != nil {
			collected[ir.idx] = ir.result
		} else if ir.err != nil {
			collected[ir.idx] = &formatter.ToolResult{
				SystemError: ir.err.Error(),
			}
		}
	}

	runResult := &formatter.RunResult{
		Passed:     true,
		DurationMs: time.Since(start).Milliseconds(),
	}

	for _, r := range collected {
		if r == nil {
			continue
		}
		runResult.Tools = append(runResult.Tools, *r)

		// Skipped tools ran no checks and carry no verdict.
		if !r.Skipped && (!r.Passed || r.SystemError != "") {
			runResult.Passed = false
		}
	}

	if e.Progress != nil {
		e.Progress.Finish()
	}

	log.Info("Engine.RunAll completed", "passed", runResult.Passed, "duration_ms", runResult.DurationMs, "tools_run", len(runResult.Tools))
	return runResult, nil
}
