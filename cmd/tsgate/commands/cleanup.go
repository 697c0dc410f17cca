package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/engine/sandbox"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

var flagCleanupAll bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove stale tsgate containers",
	Long: `Remove Docker containers with the tsgate.managed=true label that have been
idle longer than the configured TTL. With --all, remove every tsgate container
regardless of age.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("cleanup started", "all", flagCleanupAll)

		runtime, err := sandbox.NewDockerRuntime()
		if err != nil {
			return fmt.Errorf("connecting to Docker: %w", err)
		}

		pool := sandbox.NewPool(runtime)

		var count int
		if flagCleanupAll {
			count, err = pool.CleanupAll(ctx)
		} else {
			globalCfg, cfgErr := config.LoadGlobalConfig(ctx)
			if cfgErr != nil {
				return fmt.Errorf("loading global config: %w", cfgErr)
			}
			count, err = pool.CleanupStale(ctx, globalCfg.ContainerTTL)
		}
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "♻️  Removed %d tsgate container(s)\n", count)
		log.Info("cleanup completed", "removed", count)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&flagCleanupAll, "all", false, "Remove all tsgate containers, not just stale ones")
	rootCmd.AddCommand(cleanupCmd)
}
