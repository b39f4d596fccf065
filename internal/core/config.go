// Package core contains the business logic for focustick: the countdown
// state machine, the work/break phase controller, the recurrence engine,
// the scheduling sweep, and configuration loading.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"focustick/pkg/models"
)

// ConfigurationManager loads and validates the focustick.toml settings.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
}

// viperConfigManager implements ConfigurationManager using Viper to read
// the TOML configuration file.
type viperConfigManager struct {
	// basePath is the directory where focustick.toml resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// focustick.toml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a Config populated with the default durations
// (25-minute work phase, 5-minute break) and no alert sound.
func DefaultConfig() *models.Config {
	return &models.Config{
		Durations: models.DurationConfig{
			WorkSeconds:  1500,
			BreakSeconds: 300,
		},
	}
}

// LoadConfig reads focustick.toml from the base path. Missing keys fall
// back to defaults; a missing file returns the defaults outright.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("focustick")
	v.SetConfigType("toml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("durations.work_duration", cfg.Durations.WorkSeconds)
	v.SetDefault("durations.break_duration", cfg.Durations.BreakSeconds)
	v.SetDefault("audio.finish_sound", cfg.Audio.FinishSound)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading focustick.toml: %w", err)
	}

	cfg.Durations.WorkSeconds = v.GetInt("durations.work_duration")
	cfg.Durations.BreakSeconds = v.GetInt("durations.break_duration")
	cfg.Audio.FinishSound = v.GetString("audio.finish_sound")
	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.Slack.WebhookURL = v.GetString("notifications.slack.webhook_url")
	cfg.Notifications.Alerts.StaleSweepDays = v.GetInt("notifications.alerts.stale_sweep_days")
	cfg.Notifications.Alerts.IdleDays = v.GetInt("notifications.alerts.idle_days")
	cfg.Notifications.Alerts.MaxOpenTasks = v.GetInt("notifications.alerts.max_open_tasks")

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns
// an error naming every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Durations.WorkSeconds <= 0 {
		errs = append(errs, fmt.Sprintf(
			"durations.work_duration must be positive, got %d", cfg.Durations.WorkSeconds))
	}
	if cfg.Durations.BreakSeconds <= 0 {
		errs = append(errs, fmt.Sprintf(
			"durations.break_duration must be positive, got %d", cfg.Durations.BreakSeconds))
	}
	if cfg.Notifications.Alerts.StaleSweepDays < 0 {
		errs = append(errs, "notifications.alerts.stale_sweep_days must be non-negative")
	}
	if cfg.Notifications.Alerts.IdleDays < 0 {
		errs = append(errs, "notifications.alerts.idle_days must be non-negative")
	}
	if cfg.Notifications.Alerts.MaxOpenTasks < 0 {
		errs = append(errs, "notifications.alerts.max_open_tasks must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
