package core

import (
	"errors"
	"testing"
)

// recordingAlert captures PlayAlert calls for assertions.
type recordingAlert struct {
	calls []string
}

func (a *recordingAlert) PlayAlert(soundPath string) {
	a.calls = append(a.calls, soundPath)
}

// memEventLogger collects logged events in memory.
type memEventLogger struct {
	events []loggedEvent
}

type loggedEvent struct {
	eventType string
	data      map[string]any
}

func (l *memEventLogger) LogEvent(eventType string, data map[string]any) error {
	l.events = append(l.events, loggedEvent{eventType: eventType, data: data})
	return nil
}

func (l *memEventLogger) countByType(eventType string) int {
	n := 0
	for _, e := range l.events {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

func TestNewPhaseControllerRejectsNonPositiveDurations(t *testing.T) {
	cases := []struct {
		name      string
		work, brk int
	}{
		{"zero work", 0, 300},
		{"zero break", 1500, 0},
		{"negative work", -1, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPhaseController(tc.work, tc.brk, nil, "", nil); !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("expected ErrInvalidDuration, got %v", err)
			}
		})
	}
}

func TestPhaseControllerStartsInWorkPhasePaused(t *testing.T) {
	pc, err := NewPhaseController(1500, 300, nil, "", nil)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}
	if pc.Phase() != PhaseWork {
		t.Errorf("expected work phase, got %s", pc.Phase())
	}
	if pc.Running() {
		t.Error("controller started running")
	}
	if pc.Remaining() != 1500 {
		t.Errorf("expected remaining 1500, got %d", pc.Remaining())
	}
}

func TestPhaseControllerCompletionFlipsAndStaysPaused(t *testing.T) {
	alert := &recordingAlert{}
	log := &memEventLogger{}
	pc, err := NewPhaseController(2, 5, alert, "ding.wav", log)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}

	pc.Start()
	pc.Tick()
	pc.Tick() // completes the work phase

	if pc.Phase() != PhaseBreak {
		t.Fatalf("expected break phase after completion, got %s", pc.Phase())
	}
	if pc.Running() {
		t.Error("new phase started running; it must stay paused")
	}
	if pc.Remaining() != 5 || pc.Total() != 5 {
		t.Errorf("expected break duration 5/5 armed, got %d/%d", pc.Remaining(), pc.Total())
	}

	if len(alert.calls) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alert.calls))
	}
	if alert.calls[0] != "ding.wav" {
		t.Errorf("alert played wrong sound: %s", alert.calls[0])
	}

	if got := log.countByType("timer.completed"); got != 1 {
		t.Errorf("expected 1 timer.completed event, got %d", got)
	}
	if got := log.countByType("phase.changed"); got != 1 {
		t.Errorf("expected 1 phase.changed event, got %d", got)
	}
}

func TestPhaseControllerToggleIsSilent(t *testing.T) {
	alert := &recordingAlert{}
	pc, err := NewPhaseController(1500, 300, alert, "ding.wav", nil)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}

	pc.Start()
	pc.Tick()
	pc.TogglePhase()

	if pc.Phase() != PhaseBreak {
		t.Fatalf("expected break phase after toggle, got %s", pc.Phase())
	}
	if pc.Running() {
		t.Error("toggle started the new phase")
	}
	if pc.Remaining() != 300 {
		t.Errorf("expected break duration armed, got %d", pc.Remaining())
	}
	if len(alert.calls) != 0 {
		t.Errorf("manual toggle played an alert: %v", alert.calls)
	}

	pc.TogglePhase()
	if pc.Phase() != PhaseWork {
		t.Errorf("expected work phase after second toggle, got %s", pc.Phase())
	}
	if pc.Remaining() != 1500 {
		t.Errorf("expected work duration armed, got %d", pc.Remaining())
	}
}

func TestPhaseControllerSubscribeDeliversEventsInOrder(t *testing.T) {
	pc, err := NewPhaseController(1, 2, nil, "", nil)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}
	events := pc.Subscribe(4)

	pc.Start()
	pc.Tick() // completes immediately

	first := <-events
	if first.Type != EventTimerCompleted || first.Phase != PhaseWork {
		t.Errorf("expected timer_completed for work, got %s/%s", first.Type, first.Phase)
	}
	second := <-events
	if second.Type != EventPhaseChanged || second.Phase != PhaseBreak {
		t.Errorf("expected phase_changed to break, got %s/%s", second.Type, second.Phase)
	}
	if second.Remaining != 2 || second.Total != 2 {
		t.Errorf("expected armed break 2/2 in event, got %d/%d", second.Remaining, second.Total)
	}
}

func TestPhaseControllerSlowSubscriberMissesEvents(t *testing.T) {
	pc, err := NewPhaseController(1500, 300, nil, "", nil)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}
	events := pc.Subscribe(1)

	// Two toggles produce two events; only one fits the buffer. The send
	// must not block.
	pc.TogglePhase()
	pc.TogglePhase()

	if len(events) != 1 {
		t.Fatalf("expected 1 buffered event, got %d", len(events))
	}
}

func TestPhaseControllerResetPicksUpNewDuration(t *testing.T) {
	pc, err := NewPhaseController(10, 5, nil, "", nil)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}

	pc.Start()
	pc.Tick()
	pc.Tick()

	if err := pc.SetDurations(20, 5); err != nil {
		t.Fatalf("SetDurations failed: %v", err)
	}
	// The in-flight countdown keeps its original total.
	if pc.Total() != 10 {
		t.Errorf("SetDurations changed an in-flight countdown total to %d", pc.Total())
	}

	pc.Reset()
	if pc.Running() {
		t.Error("reset left the countdown running")
	}
	if pc.Remaining() != 20 || pc.Total() != 20 {
		t.Errorf("expected reset to arm 20/20, got %d/%d", pc.Remaining(), pc.Total())
	}
}

func TestPhaseControllerSetDurationsRejectsNonPositive(t *testing.T) {
	pc, err := NewPhaseController(10, 5, nil, "", nil)
	if err != nil {
		t.Fatalf("NewPhaseController failed: %v", err)
	}
	if err := pc.SetDurations(0, 5); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("SetDurations(0, 5): expected ErrInvalidDuration, got %v", err)
	}
	if err := pc.SetDurations(10, -3); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("SetDurations(10, -3): expected ErrInvalidDuration, got %v", err)
	}
}
