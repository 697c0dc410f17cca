package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tsgate/tsgate/internal/engine/config"
	"github.com/tsgate/tsgate/internal/platform/logger"
)

// InitFS abstracts file system operations needed by the init command.
type InitFS interface {
	Stat(name string) (fs.FileInfo, error)
	IsNotExist(err error) bool
	ReadDir(name string) ([]fs.DirEntry, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tsgate in the current project",
	Long: `Detect the project's runtime (bun vs node) from lockfiles and generate a
default tsgate.yaml with typecheck, lint, and test tools.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("init started")

		projectDir, err := resolveProjectDir()
		if err != nil {
			return err
		}

		if err := initProject(projectDir, &osInitFS{}, cmd.OutOrStdout()); err != nil {
			return err
		}

		log.Info("init completed")
		return nil
	},
}

// initProject performs the init workflow with injected dependencies for testability.
func initProject(projectDir string, fsys InitFS, out io.Writer) error {
	configPath := filepath.Join(projectDir, "tsgate.yaml")

	if _, err := fsys.Stat(configPath); !fsys.IsNotExist(err) {
		fmt.Fprintf(out, "⚡ Config already exists at %s. Skipping generation.\n", configPath)
		return nil
	}

	entries, err := fsys.ReadDir(projectDir)
	if err != nil {
		return fmt.Errorf("reading project directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}

	rt := config.DetectRuntime(files)
	yamlContent := config.GenerateConfigYAML(rt)

	if err := fsys.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil { // #nosec G306 -- config file, not sensitive
		return fmt.Errorf("writing tsgate.yaml: %w", err)
	}

	fmt.Fprintf(out, "✅ Detected %s project. Generated %s.\n", rt, configPath)
	fmt.Fprintln(out, "🔎 Tsgate initialized successfully!")
	return nil
}

// osInitFS implements InitFS using the os package.
type osInitFS struct{}

func (o *osInitFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osInitFS) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (o *osInitFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osInitFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm) // #nosec G306 -- config file, not sensitive
}

func init() {
	rootCmd.AddCommand(initCmd)
}
