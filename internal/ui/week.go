package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/export"
	"github.com/javiermolinar/weekview/internal/summary"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		format  string
		copyOut bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week as a seven-column grid",
		Long: `Lay out the week containing --date and print it.

Each line is a row; a task occupies the columns of the days it covers.
'<' marks a task that began before the week, '>' one that continues after it.`,
		Example: `  weekview week
  weekview week --date=next-week
  weekview week --date=2025-03-12 --format=json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor || !a.config.UI.Color {
				DisableColor()
			}

			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (valid: text, json, yaml)", format)
			}

			day, err := parseDay(date)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			week, err := summary.BuildWeek(context.Background(), a.repo, summary.Options{
				Date:     &day,
				FirstDay: a.config.FirstWeekday(),
			})
			if err != nil {
				return fmt.Errorf("building week: %w", err)
			}
			a.log.Debug("week laid out", "window", week.Window.String(), "rows", week.Layout.Rows)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return export.JSON(out, week.Layout)
			case "yaml":
				return export.YAML(out, week.Layout)
			}

			width := termWidth()
			printWeek(out, week, width, true)

			if copyOut {
				var plain strings.Builder
				printWeek(&plain, week, width, false)
				if err := copyToClipboard(plain.String()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day in the week (default: today)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the text grid to the clipboard")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printWeek writes the header, grid and stats line. With styled false the
// output carries no color codes.
func printWeek(w io.Writer, week *summary.WeekLayout, width int, styled bool) {
	start, end := week.Window.Start().Time(), week.Window.End().Time()
	header := fmt.Sprintf("WEEK: %s - %s", start.Format("Mon Jan 2"), end.Format("Mon Jan 2, 2006"))

	opts := export.TextOptions{Width: width}
	if styled {
		header = formatHeader(header)
		opts.Header = formatHeader
		opts.Bar = formatBar
	}

	fmt.Fprintf(w, "\n  %s\n\n", header)
	if week.Layout.Empty() {
		fmt.Fprintln(w, "No tasks scheduled for this week.")
		return
	}
	fmt.Fprint(w, export.Text(week.Layout, opts))

	stats := week.Stats.String()
	if styled {
		stats = formatStats(stats)
	}
	fmt.Fprintf(w, "\n  %s\n", stats)
}
