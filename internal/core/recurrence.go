package core

import (
	"time"

	"focustick/pkg/models"
)

// Offsets used for the fixed-interval recurrence kinds. Monthly and yearly
// use flat day counts rather than calendar arithmetic; see DESIGN.md.
const (
	dailyOffsetDays   = 1
	monthlyOffsetDays = 30
	yearlyOffsetDays  = 365
)

// NextDueDate computes when the follow-up for a recurring task falls due.
// prev is the task's current due date, nil when the task has none; now is
// the reference time for tasks without one. The second return value is
// false when the recurrence produces no follow-up.
//
// Weekly recurrences anchor on the current due date when it is still in
// the future, otherwise on now, and return the first of the next seven
// days whose weekday name is in the day set. A non-empty day set always
// matches within seven consecutive days.
func NextDueDate(rec models.Recurrence, prev *time.Time, now time.Time) (time.Time, bool) {
	switch rec.Kind {
	case models.RecurDaily:
		return offsetFrom(prev, now, dailyOffsetDays), true
	case models.RecurWeekly:
		return nextWeeklyDate(prev, now, rec.Days)
	case models.RecurMonthly:
		return offsetFrom(prev, now, monthlyOffsetDays), true
	case models.RecurYearly:
		return offsetFrom(prev, now, yearlyOffsetDays), true
	default:
		return time.Time{}, false
	}
}

// offsetFrom adds days to prev when present, otherwise to now.
func offsetFrom(prev *time.Time, now time.Time, days int) time.Time {
	base := now
	if prev != nil {
		base = *prev
	}
	return base.AddDate(0, 0, days)
}

// nextWeeklyDate scans seven candidate dates from the anchor and returns
// the first whose weekday is in the selected set.
func nextWeeklyDate(prev *time.Time, now time.Time, days []string) (time.Time, bool) {
	if len(days) == 0 {
		return time.Time{}, false
	}

	selected := make(map[string]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}

	anchor := now
	if prev != nil && prev.After(now) {
		anchor = *prev
	}

	for i := 0; i < 7; i++ {
		candidate := anchor.AddDate(0, 0, i)
		if selected[candidate.Weekday().String()] {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// SpawnFollowUp materializes the next occurrence of a recurring task. The
// new record carries over title, description, priority, category, and the
// recurrence rule; it gets the computed due date, an open completion
// state, and fresh timestamps. The ID is left empty for the task store to
// assign on insert. The source task is not modified.
func SpawnFollowUp(src models.Task, due time.Time, now time.Time) models.Task {
	return models.Task{
		Title:       src.Title,
		Description: src.Description,
		Priority:    src.Priority,
		CategoryID:  src.CategoryID,
		Recurrence:  src.Recurrence,
		DueDate:     &due,
		Completed:   false,
		Created:     now,
		Updated:     now,
	}
}
