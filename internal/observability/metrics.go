package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	WorkSessionsCompleted  int            `json:"work_sessions_completed"`
	BreakSessionsCompleted int            `json:"break_sessions_completed"`
	PhaseChanges           int            `json:"phase_changes"`
	TasksCreated           int            `json:"tasks_created"`
	TasksCompleted         int            `json:"tasks_completed"`
	FollowUpsSpawned       int            `json:"follow_ups_spawned"`
	SpawnedByKind          map[string]int `json:"spawned_by_kind"`
	SweepRuns              int            `json:"sweep_runs"`
	EventCount             int            `json:"event_count"`
	OldestEvent            *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent            *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		SpawnedByKind: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "timer.completed":
			if phase, ok := event.Data["phase"].(string); ok && phase == "break" {
				m.BreakSessionsCompleted++
			} else {
				m.WorkSessionsCompleted++
			}
		case "phase.changed":
			m.PhaseChanges++
		case "task.created":
			m.TasksCreated++
		case "task.completed":
			m.TasksCompleted++
		case "task.spawned":
			m.FollowUpsSpawned++
			if kind, ok := event.Data["kind"].(string); ok {
				m.SpawnedByKind[kind]++
			}
		case "sweep.completed":
			m.SweepRuns++
		}
	}

	return m, nil
}
