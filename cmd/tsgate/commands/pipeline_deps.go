package commands

import (
	"context"

	"github.com/tsgate/tsgate/internal/engine/adapter"
	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/formatter"
)

// DockerChecker abstracts Docker pre-flight checks.
type DockerChecker interface {
	CheckDocker(ctx context.Context) error
}

// AdapterCreator abstracts the creation of adapter instances from configuration.
type AdapterCreator interface {
	CreateAll(tools []config.Tool) ([]adapter.Adapter, error)
}

// AdapterRunner abstracts parallel execution of adapters.
type AdapterRunner interface {
	RunAll(ctx context.Context, adapters []adapter.Adapter, failFast bool, toolNames []string) (*formatter.RunResult, error)
}
