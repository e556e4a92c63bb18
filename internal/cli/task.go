package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"commitd/internal/model"
)

func newTaskCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCommand(app),
		newTaskListCommand(app),
		newTaskDoneCommand(app),
		newTaskMoveCommand(app),
		newTaskRemoveCommand(app),
	)
	return cmd
}

func newTaskAddCommand(app *App) *cobra.Command {
	var category string
	var tomorrow bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task for today (or tomorrow)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			due := app.today()
			if tomorrow {
				due = model.AddDays(due, 1)
			}
			task, err := app.Tasks.AddTask(cmd.Context(), args[0], cat, due)
			if err != nil {
				return err
			}
			fmt.Printf("added #%d %q (%s) due %s\n",
				task.ID, task.Title, task.Category, model.FormatDate(task.DueDate))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "life", "task category (life, work, relationships)")
	cmd.Flags().BoolVar(&tomorrow, "tomorrow", false, "plan for tomorrow instead of today")
	return cmd
}

func newTaskListCommand(app *App) *cobra.Command {
	var dateStr, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := app.today()
			if dateStr != "" {
				parsed, err := model.ParseDate(dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", dateStr, err)
				}
				date = parsed
			}

			var tasks []model.Task
			var err error
			if category != "" {
				cat, perr := model.ParseCategory(category)
				if perr != nil {
					return perr
				}
				tasks, err = app.Tasks.ListForDateByCategory(cmd.Context(), date, cat)
			} else {
				tasks, err = app.Tasks.ListForDate(cmd.Context(), date)
			}
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Printf("no tasks for %s\n", model.FormatDate(date))
				return nil
			}
			for _, task := range tasks {
				mark := " "
				if task.Completed {
					mark = "x"
				}
				fmt.Printf("[%s] #%d %s (%s)\n", mark, task.ID, task.Title, task.Category)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "date to list (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	return cmd
}

func newTaskDoneCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.ToggleCompletion(cmd.Context(), id, time.Now())
			if err != nil {
				return err
			}
			if task.Completed {
				fmt.Printf("completed #%d %q\n", task.ID, task.Title)
			} else {
				fmt.Printf("reopened #%d %q\n", task.ID, task.Title)
			}
			return nil
		},
	}
}

func newTaskMoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id>",
		Short: "Move a task to tomorrow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.MoveToTomorrow(cmd.Context(), id, app.today())
			if err != nil {
				return err
			}
			fmt.Printf("moved #%d %q to %s\n", task.ID, task.Title, model.FormatDate(task.DueDate))
			return nil
		},
	}
}

func newTaskRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted #%d\n", id)
			return nil
		},
	}
}

func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(id), nil
}
