package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/logging"
	"github.com/javiermolinar/weekview/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Show the effective configuration.

If no config file exists, creates one with default values.
With --edit, prompts for each value and saves the result.

Example:
  weekview config
  weekview config --edit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(config.DefaultConfigPath(), os.Stdin, cmd.OutOrStdout(), edit)
		},
	}
	cmd.Flags().BoolVar(&edit, "edit", false, "Edit values interactively")

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	})

	return cmd
}

func runConfig(path string, in io.Reader, out io.Writer, edit bool) error {
	fmt.Fprintf(out, "Config file: %s\n\n", path)

	// A config that fails validation is still shown so it can be edited.
	cfg, err := config.Read(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", path)
	}

	printConfig(out, cfg)
	if !edit {
		return nil
	}

	reader := bufio.NewReader(in)
	fmt.Fprintln(out)

	cfg.Calendar.WeekStart = promptChoice(reader, out, "Week starts on", cfg.Calendar.WeekStart, func(v string) bool {
		_, ok := dateutil.ParseWeekday(v)
		return ok
	})
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptChoice(reader, out, fmt.Sprintf("UI theme (%s)", strings.Join(theme.Available(), ", ")), cfg.UI.Theme, theme.IsAvailable)
	cfg.UI.Color = promptBool(reader, out, "Color output", cfg.UI.Color)
	cfg.Server.Addr = promptValue(reader, out, "Server address", cfg.Server.Addr)
	cfg.Log.Level = promptChoice(reader, out, "Log level (debug, info, warn, error)", cfg.Log.Level, logging.ValidLevel)
	cfg.Log.File = promptValue(reader, out, "Log file (empty to disable)", cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[calendar]")
	fmt.Fprintf(w, "  week_start = %s\n", cfg.Calendar.WeekStart)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path    = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme      = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  color      = %t\n", cfg.UI.Color)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr       = %s\n", cfg.Server.Addr)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level      = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  file       = %s\n", cfg.Log.File)
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

// promptChoice re-asks until valid accepts the answer. It gives up and keeps
// current once input is exhausted.
func promptChoice(reader *bufio.Reader, w io.Writer, label, current string, valid func(string) bool) string {
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if valid(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid value %q.\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptBool(reader *bufio.Reader, w io.Writer, label string, current bool) bool {
	value := promptValue(reader, w, label+" (true/false)", strconv.FormatBool(current))
	b, err := strconv.ParseBool(value)
	if err != nil {
		return current
	}
	return b
}
