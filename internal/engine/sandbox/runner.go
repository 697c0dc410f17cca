package sandbox

import (
	"context"
	"time"

	"github.com/tsgate/tsgate/internal/engine/exec"
)

// ContainerPool abstracts Pool for testability.
type ContainerPool interface {
	GetOrCreate(ctx context.Context, img, projectPath string) (string, error)
	CleanupStale(ctx context.Context, ttl time.Duration) (int, error)
	CleanupAll(ctx context.Context) (int, error)
}

// CommandExecutor abstracts Executor for testability.
type CommandExecutor interface {
	Run(ctx context.Context, containerID, command string, timeout time.Duration) (*ExecResult, error)
}

// ContainerRunner runs tool commands inside a pooled container.
// It satisfies exec.Runner so adapters can swap it in for the local runner
// when a tool is configured with a container image.
type ContainerRunner struct {
	pool     ContainerPool
	executor CommandExecutor
	image    string
}

// NewContainerRunner creates a runner that executes commands in containers
// based on the given image.
func NewContainerRunner(pool ContainerPool, executor CommandExecutor, image string) *ContainerRunner {
	return &ContainerRunner{
		pool:     pool,
		executor: executor,
		image:    image,
	}
}

// Run acquires a warm container for the runner's image and the given project
// directory, then executes the command inside it. The host workDir maps to
// /workspace inside the container.
func (r *ContainerRunner) Run(ctx context.Context, workDir, command string, timeout time.Duration) (*exec.Result, error) {
	containerID, err := r.pool.GetOrCreate(ctx, r.image, workDir)
	if err != nil {
		return nil, err
	}

	res, err := r.executor.Run(ctx, containerID, command, timeout)
	if err != nil {
		return nil, err
	}

	return &exec.Result{
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		ExitCode: res.ExitCode,
		TimedOut: res.TimedOut,
		Duration: res.Duration,
	}, nil
}
