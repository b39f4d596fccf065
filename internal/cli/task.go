package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"focustick/internal/storage"
	"focustick/pkg/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task list (add, list, done)",
	Long: `Manage the recurring task list.

Add tasks with an optional recurrence rule, list them, and mark them
completed. Completed recurring tasks get follow-ups via "focustick sweep".`,
}

var (
	taskAddDesc     string
	taskAddPriority int
	taskAddDue      string
	taskAddRepeat   string
	taskAddDays     []string
	taskAddCategory string
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a task to the list.

Use --repeat to make the task recurring (daily, weekly, monthly, yearly).
Weekly tasks need --days with one or more weekday names, e.g.
--days Monday,Wednesday.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		recurrence, err := parseRecurrence(taskAddRepeat, taskAddDays)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		task := models.Task{
			Title:       args[0],
			Description: taskAddDesc,
			Priority:    taskAddPriority,
			CategoryID:  taskAddCategory,
			Recurrence:  recurrence,
			Created:     now,
			Updated:     now,
		}

		if taskAddDue != "" {
			due, err := time.Parse("2006-01-02", taskAddDue)
			if err != nil {
				return fmt.Errorf("parsing --due: expected YYYY-MM-DD, got %q", taskAddDue)
			}
			task.DueDate = &due
		}

		if err := task.Validate(); err != nil {
			return err
		}

		id, err := TaskStore.Insert(task)
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		logEvent("task.created", map[string]any{
			"task_id": id,
			"kind":    string(recurrence.Kind),
		})

		fmt.Printf("Added task %s\n", id)
		if task.DueDate != nil {
			fmt.Printf("  Due:    %s\n", task.DueDate.Format("2006-01-02"))
		}
		if recurrence.IsRecurring() {
			fmt.Printf("  Repeat: %s\n", describeRecurrence(recurrence))
		}
		return nil
	},
}

var taskListAll bool

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List open tasks, sorted by priority. Use --all to include completed tasks.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		filter := storage.TaskFilter{}
		if !taskListAll {
			open := false
			filter.Completed = &open
		}
		tasks, err := TaskStore.FetchAll(filter)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks. Add one with 'focustick task add <title>'.")
			return nil
		}

		// Open tasks first, then priority high to low, then ID.
		sort.Slice(tasks, func(i, j int) bool {
			if tasks[i].Completed != tasks[j].Completed {
				return !tasks[i].Completed
			}
			if tasks[i].Priority != tasks[j].Priority {
				return tasks[i].Priority > tasks[j].Priority
			}
			return tasks[i].ID < tasks[j].ID
		})

		fmt.Printf("  %-12s %-3s %-30s %-10s %-24s %s\n", "ID", "PRI", "TITLE", "DUE", "REPEAT", "STATUS")
		for _, t := range tasks {
			due := "-"
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02")
			}
			repeat := "-"
			if t.Recurrence.IsRecurring() {
				repeat = describeRecurrence(t.Recurrence)
			}
			status := "open"
			if t.Completed {
				status = "done"
			}
			line := fmt.Sprintf("  %-12s %-3d %-30s %-10s %-24s %s",
				t.ID, t.Priority, truncate(t.Title, 30), due, repeat, status)
			if t.Completed {
				line = taskDoneStyle.Render(line)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		task, err := TaskStore.Get(args[0])
		if err != nil {
			return fmt.Errorf("completing task: %w", err)
		}
		if task.Completed {
			fmt.Printf("Task %s is already completed.\n", task.ID)
			return nil
		}

		task.Completed = true
		task.Updated = time.Now().UTC()
		if err := TaskStore.Update(*task); err != nil {
			return fmt.Errorf("completing task %s: %w", task.ID, err)
		}

		logEvent("task.completed", map[string]any{"task_id": task.ID})

		fmt.Printf("Completed %s\n", task.ID)
		return nil
	},
}

var taskDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)

// parseRecurrence converts the --repeat and --days flags into a
// recurrence value. Validation of weekly day names happens in
// models.Task.Validate.
func parseRecurrence(repeat string, days []string) (models.Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(repeat)) {
	case "":
		return models.Recurrence{Kind: models.RecurNone}, nil
	case "daily":
		return models.Recurrence{Kind: models.RecurDaily}, nil
	case "weekly":
		return models.Recurrence{Kind: models.RecurWeekly, Days: normalizeDays(days)}, nil
	case "monthly":
		return models.Recurrence{Kind: models.RecurMonthly}, nil
	case "yearly":
		return models.Recurrence{Kind: models.RecurYearly}, nil
	default:
		return models.Recurrence{}, fmt.Errorf(
			"unknown --repeat value %q (use daily, weekly, monthly, or yearly)", repeat)
	}
}

// normalizeDays capitalizes weekday names so "monday" matches "Monday".
func normalizeDays(days []string) []string {
	var out []string
	for _, d := range days {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		out = append(out, strings.ToUpper(d[:1])+strings.ToLower(d[1:]))
	}
	return out
}

func describeRecurrence(r models.Recurrence) string {
	if r.Kind == models.RecurWeekly {
		return fmt.Sprintf("weekly (%s)", strings.Join(r.Days, ","))
	}
	return string(r.Kind)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	taskAddCmd.Flags().StringVar(&taskAddDesc, "desc", "", "Task description")
	taskAddCmd.Flags().IntVar(&taskAddPriority, "priority", 1, "Priority from 1 (lowest) to 5 (highest)")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskAddRepeat, "repeat", "", "Recurrence: daily, weekly, monthly, or yearly")
	taskAddCmd.Flags().StringSliceVar(&taskAddDays, "days", nil, "Weekday names for weekly recurrence")
	taskAddCmd.Flags().StringVar(&taskAddCategory, "category", "", "Category identifier")
	taskListCmd.Flags().BoolVar(&taskListAll, "all", false, "Include completed tasks")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	rootCmd.AddCommand(taskCmd)
}
