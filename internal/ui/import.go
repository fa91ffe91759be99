package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/export"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Import tasks from a YAML file",
		Long: `Create tasks in bulk from a YAML list.

Every entry is validated before anything is stored; the import is
all-or-nothing.

Example file:
  - title: Sprint
    project: 2
    start: 2025-03-10
    end: 2025-03-14
  - title: Retro
    start: 2025-03-14

Example:
  weekview import tasks.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("import file does not exist: %s", path)
				}
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			tasks, err := export.ImportYAML(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateTasks(context.Background(), tasks); err != nil {
				return fmt.Errorf("importing tasks: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", len(tasks), path)
			return nil
		},
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
