package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"focustick/internal/observability"
)

var alertsNotify bool

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Check alert conditions against the event log",
	Long: `Evaluate alert conditions and display any that triggered.

Conditions cover stale scheduling sweeps, idle timer usage, and open
task count. Use --notify to also send triggered alerts to the
configured Slack webhook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if AlertEngine == nil {
			return fmt.Errorf("alert engine not initialized (is the event log available?)")
		}

		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			return fmt.Errorf("evaluating alerts: %w", err)
		}

		if len(alerts) == 0 {
			fmt.Println(alertOKStyle.Render("✓ No alerts triggered"))
			return nil
		}

		fmt.Printf("%d alert(s) triggered:\n\n", len(alerts))
		for _, a := range alerts {
			label := severityStyle(a.Severity).Render(
				fmt.Sprintf("[%s]", strings.ToUpper(string(a.Severity))))
			fmt.Printf("  %s %s\n", label, a.Message)
		}

		if alertsNotify {
			if Notifier == nil {
				return fmt.Errorf("notifications are not configured (set notifications.slack.webhook_url)")
			}
			if err := Notifier.Notify(alerts); err != nil {
				return fmt.Errorf("sending notifications: %w", err)
			}
			fmt.Println("\nSent to Slack.")
		}
		return nil
	},
}

var (
	alertOKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	alertHighStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	alertMediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	alertLowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	alertDefaultStyle = lipgloss.NewStyle()
)

func severityStyle(s observability.AlertSeverity) lipgloss.Style {
	switch s {
	case observability.SeverityHigh:
		return alertHighStyle
	case observability.SeverityMedium:
		return alertMediumStyle
	case observability.SeverityLow:
		return alertLowStyle
	default:
		return alertDefaultStyle
	}
}

func init() {
	alertsCmd.Flags().BoolVar(&alertsNotify, "notify", false, "Send triggered alerts to the configured Slack webhook")
	rootCmd.AddCommand(alertsCmd)
}
