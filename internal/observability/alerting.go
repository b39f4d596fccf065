package observability

import (
	"fmt"
	"time"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	StaleSweepDays int `yaml:"stale_sweep_days" json:"stale_sweep_days"`
	IdleDays       int `yaml:"idle_days" json:"idle_days"`
	MaxOpenTasks   int `yaml:"max_open_tasks" json:"max_open_tasks"`
}

// DefaultAlertThresholds returns sensible defaults for alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		StaleSweepDays: 2,
		IdleDays:       3,
		MaxOpenTasks:   25,
	}
}

// AlertEngine evaluates alert conditions against the event log.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by reading events and checking thresholds.
type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
}

// NewAlertEngine creates a new AlertEngine with the given EventLog and thresholds.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		thresholds: thresholds,
	}
}

// Evaluate reads events and checks all alert conditions, returning any triggered alerts.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := time.Now().UTC()
	var alerts []Alert

	sweepAlerts, err := ae.checkStaleSweep(now)
	if err != nil {
		return nil, fmt.Errorf("checking sweep staleness: %w", err)
	}
	alerts = append(alerts, sweepAlerts...)

	idleAlerts, err := ae.checkIdleSessions(now)
	if err != nil {
		return nil, fmt.Errorf("checking idle sessions: %w", err)
	}
	alerts = append(alerts, idleAlerts...)

	openAlerts, err := ae.checkOpenTasks(now)
	if err != nil {
		return nil, fmt.Errorf("checking open tasks: %w", err)
	}
	alerts = append(alerts, openAlerts...)

	return alerts, nil
}

// checkStaleSweep fires when recurring tasks exist but no sweep has run
// within the threshold, meaning follow-ups may be overdue for generation.
func (ae *alertEngine) checkStaleSweep(now time.Time) ([]Alert, error) {
	spawned, err := ae.eventLog.Read(EventFilter{Type: "task.spawned"})
	if err != nil {
		return nil, err
	}
	sweeps, err := ae.eventLog.Read(EventFilter{Type: "sweep.completed"})
	if err != nil {
		return nil, err
	}
	if len(spawned) == 0 && len(sweeps) == 0 {
		return nil, nil
	}

	var lastSweep time.Time
	if len(sweeps) > 0 {
		lastSweep = sweeps[len(sweeps)-1].Time
	}

	threshold := time.Duration(ae.thresholds.StaleSweepDays) * 24 * time.Hour
	if now.Sub(lastSweep) <= threshold {
		return nil, nil
	}

	return []Alert{{
		ID:        "stale_sweep",
		Condition: "sweep_not_run",
		Severity:  SeverityMedium,
		Message: fmt.Sprintf("no scheduling sweep has run in the last %d days; recurring tasks may be missing follow-ups",
			ae.thresholds.StaleSweepDays),
		TriggeredAt: now,
	}}, nil
}

// checkIdleSessions fires when no work session has completed within the
// threshold.
func (ae *alertEngine) checkIdleSessions(now time.Time) ([]Alert, error) {
	completions, err := ae.eventLog.Read(EventFilter{Type: "timer.completed"})
	if err != nil {
		return nil, err
	}
	if len(completions) == 0 {
		return nil, nil
	}

	last := completions[len(completions)-1].Time
	threshold := time.Duration(ae.thresholds.IdleDays) * 24 * time.Hour
	if now.Sub(last) <= threshold {
		return nil, nil
	}

	return []Alert{{
		ID:        "idle_sessions",
		Condition: "no_recent_sessions",
		Severity:  SeverityLow,
		Message: fmt.Sprintf("no timer session has completed in the last %d days (last: %s)",
			ae.thresholds.IdleDays, last.Format("2006-01-02")),
		TriggeredAt: now,
	}}, nil
}

// checkOpenTasks estimates the open task count from creation, spawn, and
// completion events and fires when it exceeds the threshold.
func (ae *alertEngine) checkOpenTasks(now time.Time) ([]Alert, error) {
	created, err := ae.eventLog.Read(EventFilter{Type: "task.created"})
	if err != nil {
		return nil, err
	}
	spawned, err := ae.eventLog.Read(EventFilter{Type: "task.spawned"})
	if err != nil {
		return nil, err
	}
	completed, err := ae.eventLog.Read(EventFilter{Type: "task.completed"})
	if err != nil {
		return nil, err
	}

	open := len(created) + len(spawned) - len(completed)
	if open <= ae.thresholds.MaxOpenTasks {
		return nil, nil
	}

	return []Alert{{
		ID:        "open_tasks",
		Condition: "open_task_count",
		Severity:  SeverityMedium,
		Message: fmt.Sprintf("approximately %d open tasks exceed the limit of %d; recurring follow-ups may be piling up",
			open, ae.thresholds.MaxOpenTasks),
		TriggeredAt: now,
	}}, nil
}
