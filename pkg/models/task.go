package models

import (
	"fmt"
	"strings"
	"time"
)

// RecurrenceKind is the rule by which a task regenerates itself.
// Exactly one kind is active per task.
type RecurrenceKind string

const (
	RecurNone    RecurrenceKind = "none"
	RecurDaily   RecurrenceKind = "daily"
	RecurWeekly  RecurrenceKind = "weekly"
	RecurMonthly RecurrenceKind = "monthly"
	RecurYearly  RecurrenceKind = "yearly"
)

// weekdayNames is the set of valid entries for Recurrence.Days.
var weekdayNames = map[string]bool{
	"Sunday":    true,
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
}

// Recurrence describes how a task repeats. Days holds weekday names
// ("Monday", "Wednesday", ...) and is only meaningful when Kind is
// RecurWeekly; all other kinds ignore it.
type Recurrence struct {
	Kind RecurrenceKind `yaml:"kind"`
	Days []string       `yaml:"days,omitempty"`
}

// IsRecurring reports whether the recurrence generates follow-up tasks.
func (r Recurrence) IsRecurring() bool {
	return r.Kind != "" && r.Kind != RecurNone
}

// Validate checks that the recurrence configuration is internally consistent.
// A weekly recurrence requires at least one valid weekday name.
func (r Recurrence) Validate() error {
	switch r.Kind {
	case "", RecurNone, RecurDaily, RecurMonthly, RecurYearly:
		return nil
	case RecurWeekly:
		if len(r.Days) == 0 {
			return fmt.Errorf("weekly recurrence requires at least one weekday")
		}
		for _, day := range r.Days {
			if !weekdayNames[day] {
				return fmt.Errorf("weekly recurrence: %q is not a weekday name", day)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown recurrence kind %q", r.Kind)
	}
}

// Task represents a unit of work on the task list. The ID is assigned by
// the task store on insert and never changes afterwards.
type Task struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Priority    int        `yaml:"priority"`
	CategoryID  string     `yaml:"category_id,omitempty"`
	Recurrence  Recurrence `yaml:"recurrence"`
	DueDate     *time.Time `yaml:"due_date,omitempty"`
	Completed   bool       `yaml:"completed"`
	Attempts    int        `yaml:"attempts,omitempty"`
	TimeSpent   int        `yaml:"time_spent,omitempty"`
	Created     time.Time  `yaml:"created"`
	Updated     time.Time  `yaml:"updated"`
}

// Validate checks the task fields that are enforced at the creation
// boundary: non-empty title, priority within [1,5], and a consistent
// recurrence configuration.
func (t Task) Validate() error {
	var errs []string

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if t.Priority < 1 || t.Priority > 5 {
		errs = append(errs, fmt.Sprintf("priority %d is invalid, must be between 1 and 5", t.Priority))
	}
	if err := t.Recurrence.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("task validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
