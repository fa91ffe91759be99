package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		date string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a week as an iCalendar file",
		Long: `Write every task overlapping the week containing --date as all-day
iCalendar events. Without --out the calendar is written to stdout.

Example:
  weekview export --date=next-week --out=week.ics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			w := calendar.WeekOf(day, a.config.FirstWeekday())
			tasks, err := a.repo.ListTasksOverlapping(context.Background(), w.Start(), w.End())
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			ics := export.ICS(tasks, now())

			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
				return err
			}
			path, err := resolvePath(out)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks (%s) to %s\n", len(tasks), w, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day in the week (default: today)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	return cmd
}
