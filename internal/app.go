// Package internal provides the App struct that wires all components of
// focustick together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focustick/internal/cli"
	"focustick/internal/core"
	"focustick/internal/integration"
	"focustick/internal/observability"
	"focustick/internal/storage"
	"focustick/pkg/models"
)

// App holds all service dependencies for focustick.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Storage layer
	TaskStore storage.TaskManager

	// Core services
	Scheduler *core.Scheduler

	// Integration services
	Audio *integration.AudioPlayer

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components. basePath is the directory
// holding focustick.toml, tasks.yaml, and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".focustick_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: the timer and task list work without an event log.
		app.EventLog = nil
	}
	var logger core.EventLogger
	if app.EventLog != nil {
		logger = &eventLogAdapter{log: app.EventLog}

		thresholds := observability.DefaultAlertThresholds()
		if cfg.Notifications.Alerts.StaleSweepDays > 0 {
			thresholds.StaleSweepDays = cfg.Notifications.Alerts.StaleSweepDays
		}
		if cfg.Notifications.Alerts.IdleDays > 0 {
			thresholds.IdleDays = cfg.Notifications.Alerts.IdleDays
		}
		if cfg.Notifications.Alerts.MaxOpenTasks > 0 {
			thresholds.MaxOpenTasks = cfg.Notifications.Alerts.MaxOpenTasks
		}
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, thresholds)
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Slack.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.Notifications.Slack.WebhookURL)
	}

	// --- Integration services ---
	app.Audio = integration.NewAudioPlayer(logger)

	// --- Storage layer ---
	app.TaskStore = storage.NewTaskManager(basePath)

	// --- Core services ---
	storeAdapter := &taskStoreAdapter{mgr: app.TaskStore}
	app.Scheduler = core.NewScheduler(storeAdapter, core.NewSystemClock(), logger)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.TaskStore = app.TaskStore
	cli.Scheduler = app.Scheduler
	cli.Audio = app.Audio
	cli.Logger = logger
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the data directory. It checks the
// FOCUSTICK_HOME env var, then walks up from the current directory looking
// for focustick.toml, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("FOCUSTICK_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "focustick.toml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// --- Adapters ---

// taskStoreAdapter adapts storage.TaskManager to core.TaskStore.
type taskStoreAdapter struct {
	mgr storage.TaskManager
}

func (a *taskStoreAdapter) Insert(task models.Task) (string, error) {
	return a.mgr.Insert(task)
}

func (a *taskStoreAdapter) FetchAll(filter core.TaskStoreFilter) ([]models.Task, error) {
	return a.mgr.FetchAll(storage.TaskFilter{
		Completed:     filter.Completed,
		RecurringOnly: filter.RecurringOnly,
	})
}

func (a *taskStoreAdapter) Update(task models.Task) error {
	return a.mgr.Update(task)
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger (the
// same shape serves integration.EventLogger).
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
