package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start   string
		end     string
		project int64
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a task spanning one or more whole days.

Dates accept YYYY-MM-DD or relative forms: today, tomorrow, yesterday,
a weekday name, next-<weekday>, next-week, last-week.

Example:
  weekview add "Conference" --start=2025-03-12 --end=2025-03-14 --project=2
  weekview add "Release" --start=friday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, e, err := parseRange(start, end)
			if err != nil {
				return err
			}
			t, err := task.NewWithDates(args[0], project, s, e)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateTask(context.Background(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", t)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day (default: today)")
	cmd.Flags().StringVar(&end, "end", "", "Last day, inclusive (default: start)")
	cmd.Flags().Int64Var(&project, "project", 0, "Project ID used for coloring")

	return cmd
}
