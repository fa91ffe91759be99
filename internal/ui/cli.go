package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/db"
	"github.com/javiermolinar/weekview/internal/logging"
	"github.com/javiermolinar/weekview/internal/task"
	"github.com/javiermolinar/weekview/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   task.Repository
	config *config.Config
	root   *cobra.Command
	logger *logging.Logger
	log    *slog.Logger
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, log: logging.Nop()}

	a.root = &cobra.Command{
		Use:   "weekview",
		Short: "A week calendar for multi-day tasks",
		Long: `Weekview lays out multi-day tasks on a seven-day week grid.

Tasks that overlap share as few rows as possible; tasks that extend past
the week are clipped to its edges. Run without arguments to open the
interactive board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if needsValidConfig(cmd) {
				if err := a.config.Validate(); err != nil {
					return fmt.Errorf("invalid config: %w (run `weekview config --edit` to fix it)", err)
				}
			}
			return a.setupLogging()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.log)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.renameCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekview %s (commit: %s)\n", Version, Commit)
		},
	}
}

// needsValidConfig reports whether cmd works on the configured data. The
// version, config and help commands run with a broken config so it can be
// repaired.
func needsValidConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "config", "help", "completion":
			return false
		}
	}
	return true
}

// setupLogging picks the log destination: the debug file with --debug, the
// configured file when set, otherwise stderr for warnings and errors only.
func (a *App) setupLogging() error {
	if a.logger != nil {
		return nil
	}

	path, level := a.config.Log.File, a.config.Log.Level
	switch {
	case a.debug:
		path, level = logging.DebugLogPath, "debug"
	case path == "" && logging.ParseLevel(level) < slog.LevelWarn:
		level = "warn"
	}

	logger, err := logging.New(path, level)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.logger = logger
	a.log = logger.Logger
	return nil
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	repo, err := db.New(path, db.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and log file.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if cerr := a.logger.Close(); err == nil {
		err = cerr
	}
	return err
}
