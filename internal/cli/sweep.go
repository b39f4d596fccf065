package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"focustick/internal/core"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Schedule follow-ups for recurring tasks",
	Long: `Run one scheduling sweep over the task list.

Each open recurring task gets a follow-up task with its next due date.
A sweep is not idempotent: running it again before the new follow-ups
are completed creates duplicates, so run it once per period (for
example from a daily cron entry). The timer command also runs a sweep
on startup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("scheduler not initialized")
		}

		result, err := Scheduler.Run()
		if err != nil {
			if errors.Is(err, core.ErrSweepInProgress) {
				return fmt.Errorf("a sweep is already running")
			}
			// Follow-ups inserted before the failure are kept.
			if result != nil && len(result.Spawned) > 0 {
				fmt.Printf("Sweep aborted after spawning %d follow-up(s): %v\n",
					len(result.Spawned), result.Spawned)
			}
			return fmt.Errorf("running sweep: %w", err)
		}

		fmt.Printf("Sweep complete: examined %d recurring task(s), spawned %d follow-up(s)\n",
			result.Examined, len(result.Spawned))
		for _, id := range result.Spawned {
			fmt.Printf("  %s\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
