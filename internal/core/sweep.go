package core

import (
	"fmt"
	"sync/atomic"

	"focustick/pkg/models"
)

// TaskStore is the subset of the storage layer the scheduler needs.
// Defining it here keeps core independent of the storage package.
type TaskStore interface {
	Insert(task models.Task) (string, error)
	FetchAll(filter TaskStoreFilter) ([]models.Task, error)
	Update(task models.Task) error
}

// TaskStoreFilter mirrors storage.TaskFilter.
type TaskStoreFilter struct {
	Completed     *bool
	RecurringOnly bool
}

// SweepResult summarizes one scheduling sweep.
type SweepResult struct {
	Examined int
	Spawned  []string
}

// Scheduler runs the recurring-task sweep: it reads open recurring tasks
// from the store, computes each task's next due date, and inserts a
// follow-up record per task.
//
// A sweep is not idempotent within a due-date period: running it twice
// against an unchanged store produces duplicate follow-ups. Callers decide
// when a sweep is due; the scheduler only guards against overlapping runs.
type Scheduler struct {
	store   TaskStore
	clock   Clock
	log     EventLogger
	running atomic.Bool
}

// NewScheduler creates a Scheduler. clock defaults to the system clock
// when nil; log may be nil.
func NewScheduler(store TaskStore, clock Clock, log EventLogger) *Scheduler {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Scheduler{store: store, clock: clock, log: log}
}

// Run performs one sweep. Each task is its own transactional boundary:
// one read, at most one insert. A store failure aborts the remaining
// tasks for this run but keeps the follow-ups already inserted.
// Overlapping invocations are rejected with ErrSweepInProgress.
func (s *Scheduler) Run() (*SweepResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSweepInProgress
	}
	defer s.running.Store(false)

	now := s.clock.Now()

	open := false
	tasks, err := s.store.FetchAll(TaskStoreFilter{Completed: &open, RecurringOnly: true})
	if err != nil {
		return nil, fmt.Errorf("scheduling sweep: fetching recurring tasks: %w", err)
	}

	result := &SweepResult{Examined: len(tasks)}
	for _, task := range tasks {
		due, ok := NextDueDate(task.Recurrence, task.DueDate, now)
		if !ok {
			continue
		}

		followUp := SpawnFollowUp(task, due, now)
		id, err := s.store.Insert(followUp)
		if err != nil {
			s.logEvent("sweep.aborted", map[string]any{
				"source_task": task.ID,
				"error":       err.Error(),
			})
			return result, fmt.Errorf("scheduling sweep: inserting follow-up for %s: %w", task.ID, err)
		}
		result.Spawned = append(result.Spawned, id)

		s.logEvent("task.spawned", map[string]any{
			"source_task": task.ID,
			"task_id":     id,
			"due":         due.Format("2006-01-02"),
			"kind":        string(task.Recurrence.Kind),
		})
	}

	s.logEvent("sweep.completed", map[string]any{
		"examined": result.Examined,
		"spawned":  len(result.Spawned),
	})
	return result, nil
}

func (s *Scheduler) logEvent(eventType string, data map[string]any) {
	if s.log == nil {
		return
	}
	_ = s.log.LogEvent(eventType, data)
}
