package models

// DurationConfig holds the countdown lengths, in seconds, for each phase.
type DurationConfig struct {
	WorkSeconds  int `yaml:"work_duration" mapstructure:"work_duration"`
	BreakSeconds int `yaml:"break_duration" mapstructure:"break_duration"`
}

// AudioConfig holds the alert sound settings.
type AudioConfig struct {
	FinishSound string `yaml:"finish_sound" mapstructure:"finish_sound"`
}

// SlackConfig holds the Slack webhook settings for alert notifications.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// AlertConfig holds thresholds for the alert engine. Zero values fall back
// to the engine defaults.
type AlertConfig struct {
	StaleSweepDays int `yaml:"stale_sweep_days" mapstructure:"stale_sweep_days"`
	IdleDays       int `yaml:"idle_days" mapstructure:"idle_days"`
	MaxOpenTasks   int `yaml:"max_open_tasks" mapstructure:"max_open_tasks"`
}

// NotificationConfig groups outbound notification settings.
type NotificationConfig struct {
	Enabled bool        `yaml:"enabled" mapstructure:"enabled"`
	Slack   SlackConfig `yaml:"slack" mapstructure:"slack"`
	Alerts  AlertConfig `yaml:"alerts" mapstructure:"alerts"`
}

// Config holds all settings read from focustick.toml via Viper.
type Config struct {
	Durations     DurationConfig     `yaml:"durations" mapstructure:"durations"`
	Audio         AudioConfig        `yaml:"audio" mapstructure:"audio"`
	Notifications NotificationConfig `yaml:"notifications" mapstructure:"notifications"`
}
