package cli

import (
	"focustick/internal/core"
	"focustick/internal/integration"
	"focustick/internal/observability"
	"focustick/internal/storage"
	"focustick/pkg/models"
)

// Service instances, set during app initialization in internal/app.go.
var (
	BasePath  string
	Config    *models.Config
	TaskStore storage.TaskManager
	Scheduler *core.Scheduler
	Audio     *integration.AudioPlayer
	Logger    core.EventLogger

	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)

// logEvent writes to the event log when one is configured.
func logEvent(eventType string, data map[string]any) {
	if Logger == nil {
		return
	}
	_ = Logger.LogEvent(eventType, data)
}
