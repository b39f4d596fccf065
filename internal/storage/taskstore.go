// Package storage provides the YAML-backed task store. Every call loads
// and persists the whole file: per-call atomicity is all the store
// guarantees, matching what the scheduling sweep assumes.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"focustick/pkg/models"
)

// taskIDPadWidth controls the zero-padding of the numeric ID portion.
const taskIDPadWidth = 5

// TaskFilter specifies criteria for fetching tasks. All specified fields
// use AND logic.
type TaskFilter struct {
	// Completed restricts results to the given completion state when set.
	Completed *bool
	// RecurringOnly drops tasks whose recurrence kind is none.
	RecurringOnly bool
}

// taskFile is the top-level structure of tasks.yaml. The ID counter is
// stored alongside the records so insert-and-assign stays a single write.
type taskFile struct {
	Version string                 `yaml:"version"`
	Counter int                    `yaml:"counter"`
	Tasks   map[string]models.Task `yaml:"tasks"`
}

// TaskManager defines the interface for the durable task registry.
type TaskManager interface {
	Insert(task models.Task) (string, error)
	Get(taskID string) (*models.Task, error)
	FetchAll(filter TaskFilter) ([]models.Task, error)
	Update(task models.Task) error
}

type fileTaskManager struct {
	basePath string
}

// NewTaskManager creates a TaskManager backed by a tasks.yaml file in the
// given base directory.
func NewTaskManager(basePath string) TaskManager {
	return &fileTaskManager{basePath: basePath}
}

func (m *fileTaskManager) filePath() string {
	return filepath.Join(m.basePath, "tasks.yaml")
}

// lock serializes mutations to tasks.yaml across processes. The store
// directory must exist before the lock file can be created.
func (m *fileTaskManager) lock() (func() error, error) {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return lockStore(filepath.Join(m.basePath, "tasks.yaml.lock"))
}

// Insert assigns the next sequential ID to the task and persists it.
// The assigned ID is returned and is immutable from then on.
func (m *fileTaskManager) Insert(task models.Task) (string, error) {
	unlock, err := m.lock()
	if err != nil {
		return "", fmt.Errorf("inserting task: %w", err)
	}
	defer unlock()

	tf, err := m.load()
	if err != nil {
		return "", fmt.Errorf("inserting task: %w", err)
	}

	tf.Counter++
	task.ID = fmt.Sprintf("TASK-%0*d", taskIDPadWidth, tf.Counter)
	tf.Tasks[task.ID] = task

	if err := m.save(tf); err != nil {
		return "", fmt.Errorf("inserting task: %w", err)
	}
	return task.ID, nil
}

// Get returns a single task by ID.
func (m *fileTaskManager) Get(taskID string) (*models.Task, error) {
	tf, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", taskID, err)
	}
	task, exists := tf.Tasks[taskID]
	if !exists {
		return nil, fmt.Errorf("task %s not found", taskID)
	}
	return &task, nil
}

// FetchAll returns tasks matching the filter, sorted by ID so sweep runs
// process tasks in a stable order.
func (m *fileTaskManager) FetchAll(filter TaskFilter) ([]models.Task, error) {
	tf, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	var result []models.Task
	for _, task := range tf.Tasks {
		if matchesFilter(task, filter) {
			result = append(result, task)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update replaces the stored record for task.ID.
func (m *fileTaskManager) Update(task models.Task) error {
	unlock, err := m.lock()
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	defer unlock()

	tf, err := m.load()
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	if _, exists := tf.Tasks[task.ID]; !exists {
		return fmt.Errorf("updating task: task %s not found", task.ID)
	}
	tf.Tasks[task.ID] = task

	if err := m.save(tf); err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	return nil
}

func matchesFilter(task models.Task, filter TaskFilter) bool {
	if filter.Completed != nil && task.Completed != *filter.Completed {
		return false
	}
	if filter.RecurringOnly && !task.Recurrence.IsRecurring() {
		return false
	}
	return true
}

func (m *fileTaskManager) load() (*taskFile, error) {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return &taskFile{
				Version: "1.0",
				Tasks:   make(map[string]models.Task),
			}, nil
		}
		return nil, fmt.Errorf("loading task store: %w", err)
	}

	var tf taskFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("loading task store: parsing YAML: %w", err)
	}
	if tf.Tasks == nil {
		tf.Tasks = make(map[string]models.Task)
	}
	return &tf, nil
}

func (m *fileTaskManager) save(tf *taskFile) error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving task store: creating directory: %w", err)
	}
	data, err := yaml.Marshal(tf)
	if err != nil {
		return fmt.Errorf("saving task store: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving task store: writing file: %w", err)
	}
	return nil
}
