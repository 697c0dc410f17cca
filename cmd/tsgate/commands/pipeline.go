package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tsgate/tsgate/internal/engine/adapter"
	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/exec"
	"github.com/tsgate/tsgate/internal/engine/llm"
	"github.com/tsgate/tsgate/internal/engine/parser"
	"github.com/tsgate/tsgate/internal/engine/runner"
	"github.com/tsgate/tsgate/internal/engine/sandbox"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

// ErrChecksFailed is returned when one or more tools fail.
var ErrChecksFailed = errors.New("checks failed")

// runPipeline wires real infrastructure and delegates to Pipeline.Execute.
// This is a composition root — it instantiates production dependencies.
// only restricts the run to a single tool name; empty runs all tools.
func runPipeline(ctx context.Context, only string) error {
	log := logger.FromContext(ctx)

	projectDir, err := resolveProjectDir()
	if err != nil {
		return err
	}

	// Load global config for LLM availability and output preferences.
	globalCfg, err := config.LoadGlobalConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}

	// Docker is connected lazily: purely local runs never touch the daemon.
	infra := &dockerInfra{}

	local := exec.NewLocal()
	runnerFor := func(image string) exec.Runner {
		if image == "" {
			return local
		}
		return &lazyContainerRunner{infra: infra, image: image}
	}

	factory := adapter.NewFactoryWithProvider(runnerFor, parser.DefaultRegistry(), projectDir)

	var llmClient llm.Client
	if !globalCfg.GeminiAPIKey.IsEmpty() {
		llmClient = llm.NewGeminiClient(string(globalCfg.GeminiAPIKey), "", llm.DefaultClientFactory)
	}

	progress := runner.NewProgress(os.Stderr, flagJSON || flagSARIF, 0)
	engine := runner.NewEngineWithProgress(progress)

	pipeline := &Pipeline{
		Docker:       infra,
		Adapters:     factory,
		Runner:       engine,
		Explainer:    llmClient,
		LoadConfig:   config.Load,
		GlobalConfig: globalCfg,
		ConfigPath:   filepath.Join(projectDir, "tsgate.yaml"),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}

	err = pipeline.Execute(ctx, PipelineOpts{
		Only:      only,
		JSON:      flagJSON,
		SARIF:     flagSARIF,
		Verbose:   flagVerbose || globalCfg.OutputVerbose,
		NoColor:   flagNoColor || !globalCfg.OutputColor,
		FailFast:  flagFailFast,
		Container: flagContainer,
		Explain:   flagExplain,
		Skip:      flagSkip,
	})
	if err != nil && !errors.Is(err, ErrChecksFailed) {
		log.Error("pipeline failed", "error", err)
	}
	return err
}

// resolveProjectDir returns --cwd if set, otherwise the working directory.
func resolveProjectDir() (string, error) {
	if flagCwd != "" {
		abs, err := filepath.Abs(flagCwd)
		if err != nil {
			return "", fmt.Errorf("resolving --cwd: %w", err)
		}
		return abs, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

// dockerInfra lazily connects to the Docker daemon and shares one pool and
// executor across all containerized tools.
type dockerInfra struct {
	once     sync.Once
	runtime  sandbox.ContainerRuntime
	pool     *sandbox.Pool
	executor *sandbox.Executor
	err      error
}

func (d *dockerInfra) connect() error {
	d.once.Do(func() {
		rt, err := sandbox.NewDockerRuntime()
		if err != nil {
			d.err = fmt.Errorf("connecting to Docker: %w", err)
			return
		}
		d.runtime = rt
		d.pool = sandbox.NewPool(rt)
		d.executor = sandbox.NewExecutor(rt)
	})
	return d.err
}

// CheckDocker implements DockerChecker.
func (d *dockerInfra) CheckDocker(ctx context.Context) error {
	if err := d.connect(); err != nil {
		return err
	}
	return sandbox.CheckDocker(ctx, d.runtime)
}

// lazyContainerRunner defers Docker connection until a containerized tool
// actually runs.
type lazyContainerRunner struct {
	infra *dockerInfra
	image string
}

func (r *lazyContainerRunner) Run(ctx context.Context, workDir, command string, timeout time.Duration) (*exec.Result, error) {
	if err := r.infra.connect(); err != nil {
		return nil, err
	}
	return sandbox.NewContainerRunner(r.infra.pool, r.infra.executor, r.image).Run(ctx, workDir, command, timeout)
}
