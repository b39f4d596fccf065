package observability

import (
	"testing"
	"time"
)

func alertByID(alerts []Alert, id string) *Alert {
	for i := range alerts {
		if alerts[i].ID == id {
			return &alerts[i]
		}
	}
	return nil
}

func TestAlertEngineQuietOnEmptyLog(t *testing.T) {
	log := newTestLog(t)

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts on an empty log, got %v", alerts)
	}
}

func TestAlertEngineStaleSweep(t *testing.T) {
	log := newTestLog(t)
	old := time.Now().UTC().Add(-5 * 24 * time.Hour)

	_ = log.Write(Event{Time: old, Level: "INFO", Type: "sweep.completed"})
	_ = log.Write(Event{Time: old, Level: "INFO", Type: "task.spawned", Data: map[string]any{"kind": "daily"}})

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	a := alertByID(alerts, "stale_sweep")
	if a == nil {
		t.Fatalf("expected a stale_sweep alert, got %v", alerts)
	}
	if a.Severity != SeverityMedium {
		t.Errorf("expected medium severity, got %s", a.Severity)
	}
}

func TestAlertEngineRecentSweepIsQuiet(t *testing.T) {
	log := newTestLog(t)

	_ = log.Write(Event{Time: time.Now().UTC().Add(-6 * time.Hour), Level: "INFO", Type: "sweep.completed"})

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if a := alertByID(alerts, "stale_sweep"); a != nil {
		t.Errorf("unexpected stale_sweep alert: %+v", a)
	}
}

func TestAlertEngineIdleSessions(t *testing.T) {
	log := newTestLog(t)

	_ = log.Write(Event{
		Time:  time.Now().UTC().Add(-10 * 24 * time.Hour),
		Level: "INFO",
		Type:  "timer.completed",
		Data:  map[string]any{"phase": "work"},
	})
	// Keep the sweep checks quiet.
	_ = log.Write(Event{Time: time.Now().UTC(), Level: "INFO", Type: "sweep.completed"})

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	a := alertByID(alerts, "idle_sessions")
	if a == nil {
		t.Fatalf("expected an idle_sessions alert, got %v", alerts)
	}
	if a.Severity != SeverityLow {
		t.Errorf("expected low severity, got %s", a.Severity)
	}
}

func TestAlertEngineOpenTaskCount(t *testing.T) {
	log := newTestLog(t)
	now := time.Now().UTC()

	thresholds := DefaultAlertThresholds()
	thresholds.MaxOpenTasks = 3

	for i := 0; i < 3; i++ {
		_ = log.Write(Event{Time: now, Level: "INFO", Type: "task.created"})
	}
	_ = log.Write(Event{Time: now, Level: "INFO", Type: "task.spawned", Data: map[string]any{"kind": "daily"}})
	_ = log.Write(Event{Time: now, Level: "INFO", Type: "sweep.completed"})

	alerts, err := NewAlertEngine(log, thresholds).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if a := alertByID(alerts, "open_tasks"); a == nil {
		t.Fatalf("expected an open_tasks alert, got %v", alerts)
	}

	// Completing a task brings the estimate back under the limit.
	_ = log.Write(Event{Time: now, Level: "INFO", Type: "task.completed"})
	alerts, err = NewAlertEngine(log, thresholds).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if a := alertByID(alerts, "open_tasks"); a != nil {
		t.Errorf("unexpected open_tasks alert: %+v", a)
	}
}
