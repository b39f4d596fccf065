package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"focustick/internal/core"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run the interactive work/break countdown",
	Long: `Run the full-screen countdown timer. The timer alternates between a
work phase and a break phase; when a phase completes, the alert sound
plays and the next phase is armed but not started.

Key bindings: s start/stop, r reset, t toggle phase, q quit.

A scheduling sweep for recurring tasks runs once before the timer starts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil {
			return fmt.Errorf("configuration not initialized")
		}

		// The original app generated recurring follow-ups on startup;
		// a sweep failure is reported but does not block the timer.
		if Scheduler != nil {
			if _, err := Scheduler.Run(); err != nil {
				fmt.Printf("warning: scheduling sweep failed: %v\n", err)
			}
		}

		controller, err := core.NewPhaseController(
			Config.Durations.WorkSeconds,
			Config.Durations.BreakSeconds,
			Audio,
			Config.Audio.FinishSound,
			Logger,
		)
		if err != nil {
			return fmt.Errorf("creating phase controller: %w", err)
		}

		model := newTimerModel(controller)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running timer: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timerCmd)
}

// tickMsg is delivered once per second while the countdown runs.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Style definitions.
var (
	timerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	timerBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 4)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	phaseWorkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	phaseBreakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	timerHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type timerModel struct {
	controller *core.PhaseController
	events     <-chan core.PhaseEvent
	width      int

	// ticking tracks whether a tick command is already scheduled, so
	// stop/start cycles never stack multiple tick loops.
	ticking bool
	notice  string
}

func newTimerModel(controller *core.PhaseController) timerModel {
	return timerModel{
		controller: controller,
		events:     controller.Subscribe(8),
	}
}

func (m timerModel) Init() tea.Cmd {
	return nil
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s", " ":
			if m.controller.Running() {
				m.controller.Stop()
				return m, nil
			}
			m.controller.Start()
			if !m.ticking {
				m.ticking = true
				return m, tickCmd()
			}
			return m, nil
		case "r":
			m.controller.Reset()
			m.notice = ""
			return m, nil
		case "t":
			m.controller.TogglePhase()
			m.drainEvents()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.ticking = false
		m.controller.Tick()
		m.drainEvents()
		if m.controller.Running() {
			m.ticking = true
			return m, tickCmd()
		}
		return m, nil
	}

	return m, nil
}

// drainEvents consumes pending controller notifications and turns the
// latest phase change into an on-screen notice.
func (m *timerModel) drainEvents() {
	for {
		select {
		case event := <-m.events:
			if event.Type == core.EventPhaseChanged {
				m.notice = fmt.Sprintf("Switched to %s phase - press s to start", event.Phase)
			}
		default:
			return
		}
	}
}

func (m timerModel) View() string {
	title := timerTitleStyle.Render(" focustick ")
	help := timerHelpStyle.Render("s: start/stop | r: reset | t: toggle phase | q: quit")

	phase := m.controller.Phase()
	phaseLabel := phaseWorkStyle.Render("WORK")
	if phase == core.PhaseBreak {
		phaseLabel = phaseBreakStyle.Render("BREAK")
	}

	status := "paused"
	if m.controller.Running() {
		status = "running"
	}

	body := fmt.Sprintf("%s  %s\n\n%s\n\n%s",
		phaseLabel,
		timerHelpStyle.Render(status),
		clockStyle.Render(formatClock(m.controller.Remaining())),
		renderProgressBar(m.controller.Remaining(), m.controller.Total(), 30),
	)

	view := fmt.Sprintf("%s\n\n%s", title, timerBoxStyle.Render(body))
	if m.notice != "" {
		view += "\n" + noticeStyle.Render(m.notice)
	}
	return view + "\n\n" + help
}

// formatClock renders seconds as MM:SS.
func formatClock(seconds int) string {
	minutes := seconds / 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds%60)
}

// renderProgressBar draws the elapsed portion of the countdown.
func renderProgressBar(remaining, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := (total - remaining) * width / total
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
