package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/formatter"
	"github.com/tsgate/tsgate/internal/engine/llm"
	"github.com/tsgate/tsgate/internal/engine/parser"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

// defaultContainerImage is used when --container forces sandboxing for a tool
// that has no image configured.
const defaultContainerImage = "oven/bun:1"

// PipelineOpts holds per-invocation options for the pipeline.
type PipelineOpts struct {
	// Only restricts the run to a single tool by name (typecheck/lint/test
	// subcommands). Empty means run everything.
	Only      string
	JSON      bool
	SARIF     bool
	Verbose   bool
	NoColor   bool
	FailFast  bool
	Container bool
	Explain   bool
	Skip      []string
}

// Pipeline orchestrates the full tsgate pipeline with injected dependencies.
// This struct enables testing the orchestration logic without real infrastructure.
type Pipeline struct {
	// Docker checks Docker availability before running containerized tools.
	Docker DockerChecker

	// Adapters creates adapter instances from configuration.
	Adapters AdapterCreator

	// Runner executes adapters in parallel.
	Runner AdapterRunner

	// Explainer provides LLM advice for --explain. May be nil.
	Explainer llm.Client

	// LoadConfig loads the project-level tsgate.yaml.
	LoadConfig func(ctx context.Context, path string) (*config.Config, error)

	// GlobalConfig holds the pre-loaded global configuration (~/.config/tsgate/).
	GlobalConfig *config.GlobalConfig

	// ConfigPath is the path to the tsgate.yaml file.
	ConfigPath string

	// Stdout is the output writer for formatted results.
	Stdout io.Writer

	// Stderr is the output writer for progress/status messages.
	Stderr io.Writer
}

// Execute runs the full pipeline orchestration.
func (p *Pipeline) Execute(ctx context.Context, opts PipelineOpts) error {
	log := logger.FromContext(ctx)
	log.Info("tsgate pipeline started", "only", opts.Only)

	// 1. Load project configuration.
	cfg, err := p.LoadConfig(ctx, p.ConfigPath)
	if err != nil {
		return err
	}

	// 2. Validate global configuration is available.
	if p.GlobalConfig == nil {
		return fmt.Errorf("global config not loaded")
	}

	// 3. Select tools: --skip filter, then single-tool restriction.
	tools := filterSkippedTools(cfg.Tools, opts.Skip)
	if opts.Only != "" {
		tool := cfg.ToolByName(opts.Only)
		if tool == nil {
			return fmt.Errorf("tool %q not found in %s", opts.Only, p.ConfigPath)
		}
		tools = []config.Tool{*tool}
	}

	// 4. --container forces every tool into the sandbox.
	if opts.Container {
		for i := range tools {
			if tools[i].Container == "" {
				tools[i].Container = defaultContainerImage
			}
		}
	}

	if len(tools) == 0 {
		fmt.Fprintln(p.Stderr, "✅ No tools to run")
		return nil
	}

	// 5. Docker pre-flight check, only when something is containerized.
	if anyContainerized(tools) {
		if p.Docker == nil {
			return fmt.Errorf("containerized tools configured but Docker support unavailable")
		}
		if err := p.Docker.CheckDocker(ctx); err != nil {
			return err
		}
	}

	// 6. Create adapter instances.
	adapters, err := p.Adapters.CreateAll(tools)
	if err != nil {
		return err
	}

	var toolNames []string
	for _, t := range tools {
		toolNames = append(toolNames, t.Name)
	}

	// 7. Execute in parallel.
	result, err := p.Runner.RunAll(ctx, adapters, opts.FailFast, toolNames)
	if err != nil {
		return err
	}

	// 8. Optional LLM enrichment of failing diagnostics.
	if opts.Explain {
		p.explainResults(ctx, result)
	}

	// 9. Format and print results.
	var fmtr formatter.Formatter
	switch {
	case opts.SARIF:
		fmtr = formatter.NewSARIFFormatter()
	case opts.JSON:
		fmtr = formatter.NewJSONFormatter()
	default:
		fmtr = formatter.NewCLIFormatter(!opts.NoColor, opts.Verbose)
	}
	fmt.Fprint(p.Stdout, fmtr.Format(*result))

	// 10. Determine exit code.
	if !result.Passed {
		return ErrChecksFailed
	}
	return nil
}

// explainResults sends all diagnostics to the LLM and attaches surviving
// advice. Enrichment is best-effort: any failure is logged and the plain
// diagnostics are kept.
func (p *Pipeline) explainResults(ctx context.Context, result *formatter.RunResult) {
	log := logger.FromContext(ctx)

	if p.Explainer == nil {
		log.Warn("--explain requested but no Gemini API key configured, skipping")
		return
	}

	var all []parser.Diagnostic
	for _, tr := range result.Tools {
		all = append(all, tr.Diagnostics...)
	}
	if len(all) == 0 {
		return
	}

	advice, err := p.Explainer.Explain(ctx, llm.BuildPrompt(all))
	if err != nil {
		log.Warn("LLM explain failed, keeping plain diagnostics", "error", err)
		return
	}

	advice = llm.FilterAdvice(advice, all)
	for i := range result.Tools {
		result.Tools[i].Diagnostics = llm.ApplyAdvice(result.Tools[i].Diagnostics, advice)
	}
}

// filterSkippedTools removes tools matching --skip names.
func filterSkippedTools(tools []config.Tool, skipNames []string) []config.Tool {
	if len(skipNames) == 0 {
		return tools
	}

	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		skipSet[name] = true
	}

	var result []config.Tool
	for _, t := range tools {
		if skipSet[t.Name] {
			continue
		}
		result = append(result, t)
	}
	return result
}

func anyContainerized(tools []config.Tool) bool {
	for _, t := range tools {
		if t.Container != "" {
			return true
		}
	}
	return false
}
