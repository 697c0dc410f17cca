package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// singleToolCmd builds a subcommand that runs exactly one configured tool.
func singleToolCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runPipeline(cmd.Context(), name)
			if errors.Is(err, ErrChecksFailed) {
				os.Exit(1)
			}
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(
		singleToolCmd("typecheck", "Run only the TypeScript type checker"),
		singleToolCmd("lint", "Run only the linter"),
		singleToolCmd("test", "Run only the test suite"),
	)
}
