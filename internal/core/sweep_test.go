package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"focustick/pkg/models"
)

// fixedClock returns a constant time.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// memTaskStore is an in-memory TaskStore for scheduler tests.
type memTaskStore struct {
	tasks   []models.Task
	counter int
	// failAfter makes Insert fail once the store holds this many tasks;
	// -1 disables the failure.
	failAfter int
	// fetchGate, when non-nil, blocks FetchAll until the gate closes.
	// fetchEntered receives a token as each FetchAll call starts.
	fetchGate    chan struct{}
	fetchEntered chan struct{}
}

func newMemTaskStore(tasks ...models.Task) *memTaskStore {
	return &memTaskStore{tasks: tasks, counter: len(tasks), failAfter: -1}
}

func (s *memTaskStore) Insert(task models.Task) (string, error) {
	if s.failAfter >= 0 && s.counter >= s.failAfter {
		return "", fmt.Errorf("disk full")
	}
	s.counter++
	task.ID = fmt.Sprintf("TASK-%05d", s.counter)
	s.tasks = append(s.tasks, task)
	return task.ID, nil
}

func (s *memTaskStore) FetchAll(filter TaskStoreFilter) ([]models.Task, error) {
	if s.fetchEntered != nil {
		s.fetchEntered <- struct{}{}
	}
	if s.fetchGate != nil {
		<-s.fetchGate
	}
	var out []models.Task
	for _, t := range s.tasks {
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.RecurringOnly && !t.Recurrence.IsRecurring() {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *memTaskStore) Update(task models.Task) error {
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return nil
		}
	}
	return fmt.Errorf("task %s not found", task.ID)
}

func recurringTask(id, title string, kind models.RecurrenceKind, due *time.Time) models.Task {
	return models.Task{
		ID:         id,
		Title:      title,
		Priority:   1,
		Recurrence: models.Recurrence{Kind: kind},
		DueDate:    due,
	}
}

func TestSchedulerSpawnsFollowUpsForOpenRecurringTasks(t *testing.T) {
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.May, 9, 0, 0, 0, 0, time.UTC)

	store := newMemTaskStore(
		recurringTask("TASK-00001", "daily standup notes", models.RecurDaily, &due),
		recurringTask("TASK-00002", "invoice run", models.RecurMonthly, &due),
		models.Task{ID: "TASK-00003", Title: "one-off errand", Priority: 1},
	)
	log := &memEventLogger{}
	sched := NewScheduler(store, fixedClock{now: now}, log)

	result, err := sched.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Examined != 2 {
		t.Errorf("expected 2 examined recurring tasks, got %d", result.Examined)
	}
	if len(result.Spawned) != 2 {
		t.Fatalf("expected 2 spawned follow-ups, got %d", len(result.Spawned))
	}

	// The daily follow-up lands the day after the previous due date.
	var daily *models.Task
	for i := range store.tasks {
		if store.tasks[i].ID == result.Spawned[0] {
			daily = &store.tasks[i]
		}
	}
	if daily == nil {
		t.Fatal("spawned follow-up not found in store")
	}
	if daily.DueDate == nil || !daily.DueDate.Equal(due.AddDate(0, 0, 1)) {
		t.Errorf("daily follow-up due date wrong: %v", daily.DueDate)
	}
	if daily.Completed {
		t.Error("follow-up created completed")
	}

	if got := log.countByType("task.spawned"); got != 2 {
		t.Errorf("expected 2 task.spawned events, got %d", got)
	}
	if got := log.countByType("sweep.completed"); got != 1 {
		t.Errorf("expected 1 sweep.completed event, got %d", got)
	}
}

func TestSchedulerRerunSpawnsDuplicates(t *testing.T) {
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.May, 9, 0, 0, 0, 0, time.UTC)

	store := newMemTaskStore(
		recurringTask("TASK-00001", "daily standup notes", models.RecurDaily, &due),
	)
	sched := NewScheduler(store, fixedClock{now: now}, nil)

	first, err := sched.Run()
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if len(first.Spawned) != 1 {
		t.Fatalf("first run: expected 1 follow-up, got %d", len(first.Spawned))
	}

	// The spawned follow-up is itself an open recurring task, so the second
	// run examines both and spawns two more.
	second, err := sched.Run()
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.Examined != 2 {
		t.Errorf("second run: expected 2 examined, got %d", second.Examined)
	}
	if len(second.Spawned) != 2 {
		t.Errorf("second run: expected 2 follow-ups, got %d", len(second.Spawned))
	}
	if len(store.tasks) != 4 {
		t.Errorf("expected 4 stored tasks after both runs, got %d", len(store.tasks))
	}
}

func TestSchedulerAbortKeepsEarlierFollowUps(t *testing.T) {
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.May, 9, 0, 0, 0, 0, time.UTC)

	store := newMemTaskStore(
		recurringTask("TASK-00001", "first", models.RecurDaily, &due),
		recurringTask("TASK-00002", "second", models.RecurDaily, &due),
	)
	store.failAfter = 3 // first insert succeeds, second fails
	log := &memEventLogger{}
	sched := NewScheduler(store, fixedClock{now: now}, log)

	result, err := sched.Run()
	if err == nil {
		t.Fatal("expected an error from the failing insert")
	}
	if result == nil {
		t.Fatal("expected a partial result alongside the error")
	}
	if len(result.Spawned) != 1 {
		t.Errorf("expected 1 follow-up kept, got %d", len(result.Spawned))
	}
	if len(store.tasks) != 3 {
		t.Errorf("expected the successful insert to be kept, got %d stored tasks", len(store.tasks))
	}
	if got := log.countByType("sweep.aborted"); got != 1 {
		t.Errorf("expected 1 sweep.aborted event, got %d", got)
	}
	if got := log.countByType("sweep.completed"); got != 0 {
		t.Errorf("aborted sweep logged sweep.completed %d time(s)", got)
	}
}

func TestSchedulerRejectsOverlappingRuns(t *testing.T) {
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	store := newMemTaskStore()
	store.fetchGate = make(chan struct{})
	store.fetchEntered = make(chan struct{}, 2)
	sched := NewScheduler(store, fixedClock{now: now}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := sched.Run()
		done <- err
	}()

	// Wait until the first run is inside FetchAll, holding the guard.
	<-store.fetchEntered

	if _, err := sched.Run(); !errors.Is(err, ErrSweepInProgress) {
		t.Errorf("expected ErrSweepInProgress, got %v", err)
	}

	close(store.fetchGate)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// The guard resets once the run finishes.
	if _, err := sched.Run(); err != nil {
		t.Errorf("run after completion failed: %v", err)
	}
}
