package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show usage metrics derived from the event log",
	Long: `Aggregate the event log into usage metrics: completed work and break
sessions, task activity, and sweep runs.

Use --since to restrict the window, e.g. --since 7d or --since 24h.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (is the event log available?)")
		}

		since := time.Time{}
		if metricsSince != "" {
			dur, err := parseSinceDuration(metricsSince)
			if err != nil {
				return err
			}
			since = time.Now().UTC().Add(-dur)
		}

		m, err := MetricsCalc.Calculate(since)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		if metricsJSON {
			out, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding metrics: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println("Focus metrics")
		if metricsSince != "" {
			fmt.Printf("  Window:                  last %s\n", metricsSince)
		}
		fmt.Printf("  Work sessions completed:  %d\n", m.WorkSessionsCompleted)
		fmt.Printf("  Break sessions completed: %d\n", m.BreakSessionsCompleted)
		fmt.Printf("  Phase changes:            %d\n", m.PhaseChanges)
		fmt.Printf("  Tasks created:            %d\n", m.TasksCreated)
		fmt.Printf("  Tasks completed:          %d\n", m.TasksCompleted)
		fmt.Printf("  Follow-ups spawned:       %d\n", m.FollowUpsSpawned)
		if len(m.SpawnedByKind) > 0 {
			kinds := make([]string, 0, len(m.SpawnedByKind))
			for k := range m.SpawnedByKind {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Printf("    %-10s %d\n", k+":", m.SpawnedByKind[k])
			}
		}
		fmt.Printf("  Sweep runs:               %d\n", m.SweepRuns)
		fmt.Printf("  Events:                   %d\n", m.EventCount)
		if m.OldestEvent != nil && m.NewestEvent != nil {
			fmt.Printf("  Range:                    %s to %s\n",
				m.OldestEvent.Format("2006-01-02"), m.NewestEvent.Format("2006-01-02"))
		}
		return nil
	},
}

// parseSinceDuration accepts "7d" style day counts in addition to the
// formats time.ParseDuration understands.
func parseSinceDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid --since value %q (use e.g. 7d or 24h)", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil || dur < 0 {
		return 0, fmt.Errorf("invalid --since value %q (use e.g. 7d or 24h)", s)
	}
	return dur, nil
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "", "Only count events newer than this (e.g. 7d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
