package core

// Phase is one of the two countdown modes, each with its own configured
// duration.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// PhaseEventType identifies the kind of controller notification.
type PhaseEventType string

const (
	// EventTimerCompleted fires when the active countdown reaches zero.
	EventTimerCompleted PhaseEventType = "timer_completed"
	// EventPhaseChanged fires after every phase flip, whether triggered by
	// completion or by a manual toggle.
	EventPhaseChanged PhaseEventType = "phase_changed"
)

// PhaseEvent is delivered to subscribers on completion and phase changes.
type PhaseEvent struct {
	Type      PhaseEventType
	Phase     Phase
	Remaining int
	Total     int
}

// AlertPlayer plays the phase-complete sound. Implementations are
// fire-and-forget: playback failures are logged by the player and never
// propagate back to the controller.
type AlertPlayer interface {
	PlayAlert(soundPath string)
}

// PhaseController owns one Countdown and flips between work and break
// phases when it completes. The controller lives for the whole session;
// the countdown instance is reused across phase switches.
//
// Like the countdown itself, the controller is driven by a single logical
// tick source and performs no internal locking.
type PhaseController struct {
	phase     Phase
	workSecs  int
	breakSecs int
	countdown *Countdown
	alert     AlertPlayer
	soundPath string
	log       EventLogger
	subs      []chan PhaseEvent
}

// NewPhaseController creates a controller in the work phase with the
// countdown loaded to the work duration and not running. Both durations
// must be positive. alert and log may be nil.
func NewPhaseController(workSecs, breakSecs int, alert AlertPlayer, soundPath string, log EventLogger) (*PhaseController, error) {
	if workSecs <= 0 || breakSecs <= 0 {
		return nil, ErrInvalidDuration
	}
	countdown, err := NewCountdown(workSecs)
	if err != nil {
		return nil, err
	}
	return &PhaseController{
		phase:     PhaseWork,
		workSecs:  workSecs,
		breakSecs: breakSecs,
		countdown: countdown,
		alert:     alert,
		soundPath: soundPath,
		log:       log,
	}, nil
}

// Subscribe registers a new observer channel. Events are delivered with
// non-blocking sends; a subscriber that falls behind misses events rather
// than stalling the tick path.
func (pc *PhaseController) Subscribe(buffer int) <-chan PhaseEvent {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan PhaseEvent, buffer)
	pc.subs = append(pc.subs, ch)
	return ch
}

// Tick advances the owned countdown by one second. When the countdown
// completes, the controller plays the alert, flips the phase, and loads
// the new phase's duration with the countdown left paused: the user must
// start the next phase explicitly.
func (pc *PhaseController) Tick() {
	if !pc.countdown.Tick() {
		return
	}

	finishedPhase := pc.phase
	pc.emit(PhaseEvent{Type: EventTimerCompleted, Phase: finishedPhase})
	pc.logEvent("timer.completed", map[string]any{"phase": string(finishedPhase)})

	if pc.alert != nil {
		pc.alert.PlayAlert(pc.soundPath)
	}

	pc.flipPhase()
}

// TogglePhase flips the phase manually, mid-countdown or not. The effect
// matches completion — new duration loaded, countdown paused — but no
// alert sounds.
func (pc *PhaseController) TogglePhase() {
	pc.flipPhase()
}

// flipPhase switches to the other phase and arms the countdown with that
// phase's duration, reading the configured value at flip time.
func (pc *PhaseController) flipPhase() {
	if pc.phase == PhaseWork {
		pc.phase = PhaseBreak
	} else {
		pc.phase = PhaseWork
	}
	// Durations are validated positive on every write, so Load cannot fail.
	_ = pc.countdown.Load(pc.durationFor(pc.phase))

	pc.emit(PhaseEvent{
		Type:      EventPhaseChanged,
		Phase:     pc.phase,
		Remaining: pc.countdown.Remaining(),
		Total:     pc.countdown.Total(),
	})
	pc.logEvent("phase.changed", map[string]any{"phase": string(pc.phase)})
}

// Start begins or resumes the current phase's countdown.
func (pc *PhaseController) Start() {
	pc.countdown.Resume()
}

// Stop pauses the current countdown, keeping the remaining time.
func (pc *PhaseController) Stop() {
	pc.countdown.Stop()
}

// Reset stops the countdown and reloads the current phase's configured
// duration, picking up any duration change made since the phase started.
func (pc *PhaseController) Reset() {
	_ = pc.countdown.Load(pc.durationFor(pc.phase))
}

// SetDurations updates the configured durations for future phase starts.
// An in-flight countdown keeps the total it was started with.
func (pc *PhaseController) SetDurations(workSecs, breakSecs int) error {
	if workSecs <= 0 || breakSecs <= 0 {
		return ErrInvalidDuration
	}
	pc.workSecs = workSecs
	pc.breakSecs = breakSecs
	return nil
}

func (pc *PhaseController) durationFor(phase Phase) int {
	if phase == PhaseWork {
		return pc.workSecs
	}
	return pc.breakSecs
}

// Phase returns the current phase.
func (pc *PhaseController) Phase() Phase { return pc.phase }

// Remaining returns the seconds left on the active countdown.
func (pc *PhaseController) Remaining() int { return pc.countdown.Remaining() }

// Total returns the active countdown's full duration.
func (pc *PhaseController) Total() int { return pc.countdown.Total() }

// Running reports whether the countdown is advancing.
func (pc *PhaseController) Running() bool { return pc.countdown.Running() }

func (pc *PhaseController) emit(event PhaseEvent) {
	for _, ch := range pc.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (pc *PhaseController) logEvent(eventType string, data map[string]any) {
	if pc.log == nil {
		return
	}
	_ = pc.log.LogEvent(eventType, data)
}
