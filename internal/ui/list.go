package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a date range",
		Long: `List every task that overlaps a date range.

If no dates are specified, lists tasks active today.
If only --start is specified, lists tasks active on that day.
If both --start and --end are specified, lists tasks overlapping that range (inclusive).`,
		Example: `  weekview list
  weekview list --start=2025-01-15
  weekview list --start=monday --end=sunday`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := parseRange(startDate, endDate)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			tasks, err := a.repo.ListTasksOverlapping(context.Background(), start, end)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found in the specified date range.")
				return nil
			}

			// Grouped by start date; the repository returns them in start order.
			var currentDate string
			for _, t := range tasks {
				date := t.Start.String()
				if date != currentDate {
					if currentDate != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "=== %s ===\n", formatHeader(date))
					currentDate = date
				}
				printTaskLine(out, t)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (default: today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date, inclusive (default: start)")

	return cmd
}
