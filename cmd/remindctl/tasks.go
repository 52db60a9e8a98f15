package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taskreminder/internal/application/dto"
	"taskreminder/internal/application/service"
	"taskreminder/internal/infrastructure/database/sqlite"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and edit tasks",
	}

	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksStatsCmd())
	cmd.AddCommand(tasksAddCmd())
	cmd.AddCommand(tasksSetCompletedCmd("complete", "Mark a task completed", true))
	cmd.AddCommand(tasksSetCompletedCmd("reopen", "Mark a task not completed", false))
	cmd.AddCommand(tasksDeleteCmd())

	return cmd
}

// withTaskService opens the store for the duration of fn.
func withTaskService(cmd *cobra.Command, fn func(svc service.TaskService) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(service.NewTaskService(sqlite.NewTaskRepository(e.db), e.log))
}

func tasksListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks ordered by deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			open, _ := cmd.Flags().GetBool("open")
			sortBy, _ := cmd.Flags().GetString("sort")
			return withTaskService(cmd, func(svc service.TaskService) error {
				tasks, err := svc.ListTasks(cmd.Context(), dto.ListTasksRequest{Category: category, OpenOnly: open, SortBy: sortBy})
				if err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), tasks)
				return nil
			})
		},
	}

	cmd.Flags().StringP("category", "c", "", "Only tasks in this category")
	cmd.Flags().Bool("open", false, "Only tasks that are not completed")
	cmd.Flags().String("sort", dto.SortByDeadline, "Order: deadline or priority")

	return cmd
}

func tasksStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts and the completion rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTaskService(cmd, func(svc service.TaskService) error {
				stats, err := svc.Stats(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Total: %d  Unfinished: %d  Completed: %.1f%%\n",
					stats.Total, stats.Unfinished, stats.CompletionRate*100)
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, c := range stats.Categories {
					fmt.Fprintf(tw, "%s\t%d\t%d unfinished\n", c.Category, c.Total, c.Unfinished)
				}
				return tw.Flush()
			})
		},
	}
}

func tasksAddCmd() *cobra.Command {
	var req dto.CreateTaskRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTaskService(cmd, func(svc service.TaskService) error {
				task, err := svc.CreateTask(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added task %d, due %s\n", task.ID, task.Deadline.Local().Format("2006-01-02 15:04"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&req.Deadline, "deadline", "", `Deadline, RFC3339 or "2006-01-02 15:04" local time`)
	cmd.Flags().StringVar(&req.Category, "category", "", "Category (default Uncategorized)")
	cmd.Flags().IntVar(&req.Priority, "priority", 0, "Priority 1-5 (default 3)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free-form description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}

func tasksSetCompletedCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaskService(cmd, func(svc service.TaskService) error {
				task, err := svc.SetCompleted(cmd.Context(), id, completed)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d %q completed=%t\n", task.ID, task.Title, task.IsCompleted)
				return nil
			})
		},
	}
}

func tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaskService(cmd, func(svc service.TaskService) error {
				if err := svc.DeleteTask(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
				return nil
			})
		},
	}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return uint(id), nil
}

func printTasks(w io.Writer, tasks []dto.TaskResponse) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDEADLINE\tLEFT\tPRI\tCATEGORY\tDONE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%t\t%s\n",
			t.ID, t.Deadline.Local().Format("2006-01-02 15:04"), formatRemaining(t.RemainingMinutes),
			t.Priority, t.Category, t.IsCompleted, t.Title)
	}
	tw.Flush()
}

func formatRemaining(minutes int64) string {
	d := time.Duration(minutes) * time.Minute
	if d < 0 {
		return "-" + (-d).String()
	}
	return d.String()
}
