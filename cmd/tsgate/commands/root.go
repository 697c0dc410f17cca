// Package commands implements the CLI commands for tsgate.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

// Global flag values accessible to all commands.
var (
	flagJSON      bool
	flagSARIF     bool
	flagVerbose   bool
	flagNoColor   bool
	flagFailFast  bool
	flagCwd       string
	flagContainer bool
	flagExplain   bool
	flagSkip      []string
)

// rootCmd is the base command for the tsgate CLI.
var rootCmd = &cobra.Command{
	Use:   "tsgate",
	Short: "TypeScript toolchain diagnostics gate",
	Long: `Tsgate wraps the TypeScript type checker, a JSON-report linter, and the Bun
test runner behind one uniform command surface. It reads tsgate.yaml, executes
the configured tools (optionally inside Docker containers) in parallel, and
converts their raw console/JSON output into structured diagnostic records.

Built for AI-assisted development — JSON and SARIF output give agents and
code-scanning UIs precise file/line locations and fix hints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l := logger.New(flagVerbose, flagJSON || flagSARIF)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output results as JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "Output results as SARIF 2.1.0 to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Include raw tool stdout/stderr in output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagFailFast, "fail-fast", false, "Cancel remaining tools on first failure")
	rootCmd.PersistentFlags().StringVar(&flagCwd, "cwd", "", "Project directory to run in (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagContainer, "container", false, "Run every tool inside a Docker container")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "Enrich diagnostics with LLM explanations (needs Gemini API key)")
	rootCmd.PersistentFlags().StringSliceVar(&flagSkip, "skip", nil, "Skip specific tools by name")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
