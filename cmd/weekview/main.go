package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Validation is left to the commands: `version` and `config` must run
	// even when the file is broken.
	cfg, err := config.Read(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The database is opened lazily so that `version` and `config` work
	// without one.
	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
