package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeFAQGeneration represents the task type for generating FAQ
	// entries from a source post
	TaskTypeFAQGeneration = "faq_generation"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// RunAt returns the earliest time the task may execute.
	// A zero time means the task is eligible immediately.
	RunAt() time.Time

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskRecord is the persisted form of a task, as loaded from the store.
// Records carry no execution logic; a Resolver turns them back into
// executable tasks during recovery.
type TaskRecord struct {
	ID           uuid.UUID
	Type         string
	Payload      []byte
	Status       TaskStatus
	RunAt        time.Time
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Resolver reconstructs an executable Task from a persisted record.
// Implementations are registered with the runner and consulted during
// recovery of unfinished tasks.
type Resolver interface {
	// ResolveTask returns an executable task for the record, preserving the
	// record's identity and fire time. Returns an error for unknown task
	// types or malformed payloads.
	ResolveTask(record *TaskRecord) (Task, error)
}

// TaskStore defines the interface for persisting tasks
type TaskStore interface {
	// SaveTask persists a task to the database
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus updates the status of a task
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks retrieves all tasks with "pending" status
	GetPendingTasks(ctx context.Context) ([]*TaskRecord, error)

	// GetProcessingTasks retrieves tasks with "processing" status.
	// If olderThan is non-zero, only returns tasks that have been in this
	// state longer than the specified duration.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]*TaskRecord, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
