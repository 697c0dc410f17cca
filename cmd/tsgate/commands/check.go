package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run all configured tools and report diagnostics",
	Long: `Execute all tools from tsgate.yaml in parallel. Exit 0 if every tool passes,
exit 1 if any tool reports errors, fails its tests, or hits a system fault.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := runPipeline(cmd.Context(), "")
		if errors.Is(err, ErrChecksFailed) {
			os.Exit(1)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
