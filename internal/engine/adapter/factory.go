package adapter

import (
	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/exec"
	"github.com/tsgate/tsgate/internal/engine/parser"
)

// RunnerProvider returns a runner for the given container image.
// An empty image means the tool runs on the host.
type RunnerProvider func(image string) exec.Runner

// Factory creates adapters from tool configurations.
type Factory struct {
	runnerFor RunnerProvider
	registry  *parser.Registry
	workDir   string
}

// NewFactory creates a Factory where every tool runs with the given runner.
func NewFactory(runner exec.Runner, registry *parser.Registry, workDir string) *Factory {
	return &Factory{
		runnerFor: func(string) exec.Runner { return runner },
		registry:  registry,
		workDir:   workDir,
	}
}

// NewFactoryWithProvider creates a Factory that picks a runner per tool,
// letting containerized tools get a sandbox runner while the rest run locally.
func NewFactoryWithProvider(runnerFor RunnerProvider, registry *parser.Registry, workDir string) *Factory {
	return &Factory{
		runnerFor: runnerFor,
		registry:  registry,
		workDir:   workDir,
	}
}

// Create builds an adapter for a single tool configuration.
func (f *Factory) Create(cfg config.Tool) Adapter {
	return NewToolAdapter(cfg, f.runnerFor(cfg.Container), f.registry.GetOrDefault(cfg.ParserName()), f.workDir)
}

// CreateAll builds adapters for all tool configurations, preserving order.
func (f *Factory) CreateAll(tools []config.Tool) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(tools))
	for _, t := range tools {
		adapters = append(adapters, f.Create(t))
	}
	return adapters, nil
}
