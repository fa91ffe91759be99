package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Long: `Delete a task by its ID.

Example:
  weekview delete 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if err := a.repo.DeleteTask(context.Background(), id); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}

func (a *App) moveCmd() *cobra.Command {
	var (
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "move [task-id]",
		Short: "Move a task to new dates",
		Long: `Move a task to a new start date.

Without --end the task keeps its length.

Example:
  weekview move 42 --start=next-monday
  weekview move 42 --start=2025-03-10 --end=2025-03-12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			current, err := a.repo.GetTask(ctx, id)
			if err != nil {
				return fmt.Errorf("loading task: %w", err)
			}

			s, err := parseDay(start)
			if err != nil {
				return err
			}
			e := s.AddDays(current.Days() - 1)
			if end != "" {
				if e, err = parseDay(end); err != nil {
					return err
				}
			}

			moved, err := current.WithDates(s, e)
			if err != nil {
				return err
			}
			if err := a.repo.UpdateTaskDates(ctx, id, moved.Start, moved.End); err != nil {
				return fmt.Errorf("moving task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s\n", moved)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New first day (required)")
	cmd.Flags().StringVar(&end, "end", "", "New last day, inclusive (default: keep length)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [task-id] [title]",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if err := a.repo.RenameTask(context.Background(), id, args[1]); err != nil {
				return fmt.Errorf("renaming task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed task #%d\n", id)
			return nil
		},
	}
}
