package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rafysite/faqreator/internal/domain"
)

// Common errors
var (
	ErrNilFAQService = errors.New("FAQ service cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
	ErrInvalidPostID = errors.New("post ID must be positive")
)

// FAQGenerationService defines the per-post generation entry point the task
// delegates to. The same operation also backs the authenticated HTTP endpoint,
// keeping a single code path for scheduled and direct invocations.
type FAQGenerationService interface {
	// GenerateForPost runs the full generation pipeline for one source post
	// and returns the created FAQ summaries.
	GenerateForPost(ctx context.Context, postID int64) ([]domain.CreatedFAQ, error)
}

// faqGenerationPayload represents the serialized data stored in the task
type faqGenerationPayload struct {
	PostID int64 `json:"post_id"`
}

// FAQGenerationTask implements the Task interface for generating FAQ entries
// from a source post at a scheduled fire time.
type FAQGenerationTask struct {
	id         uuid.UUID
	postID     int64
	runAt      time.Time
	faqService FAQGenerationService
	logger     *slog.Logger
	status     TaskStatus
}

// NewFAQGenerationTask creates a new FAQ generation task for the given post,
// eligible to run at the given fire time.
func NewFAQGenerationTask(
	postID int64,
	runAt time.Time,
	faqService FAQGenerationService,
	logger *slog.Logger,
) (*FAQGenerationTask, error) {
	return newFAQGenerationTaskWithID(uuid.New(), postID, runAt, faqService, logger)
}

// newFAQGenerationTaskWithID builds a task with a fixed identifier. Used by
// the factory when reconstructing a task from its persisted record so the
// recovered task keeps its original identity.
func newFAQGenerationTaskWithID(
	id uuid.UUID,
	postID int64,
	runAt time.Time,
	faqService FAQGenerationService,
	logger *slog.Logger,
) (*FAQGenerationTask, error) {
	if faqService == nil {
		return nil, ErrNilFAQService
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if postID <= 0 {
		return nil, ErrInvalidPostID
	}

	return &FAQGenerationTask{
		id:         id,
		postID:     postID,
		runAt:      runAt,
		faqService: faqService,
		logger:     logger.With("task_type", TaskTypeFAQGeneration, "post_id", postID),
		status:     TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *FAQGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *FAQGenerationTask) Type() string {
	return TaskTypeFAQGeneration
}

// Payload returns the task data as a byte slice
func (t *FAQGenerationTask) Payload() []byte {
	payload := faqGenerationPayload{
		PostID: t.postID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *FAQGenerationTask) Status() TaskStatus {
	return t.status
}

// RunAt returns the scheduled fire time
func (t *FAQGenerationTask) RunAt() time.Time {
	return t.runAt
}

// Execute runs the FAQ generation pipeline for the task's post.
// Errors are terminal for this job only; sibling jobs in the same batch are
// independent invocations and unaffected.
func (t *FAQGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting FAQ generation task")

	// Check for context cancellation
	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	created, err := t.faqService.GenerateForPost(ctx, t.postID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("FAQ generation failed", "error", err)
		return fmt.Errorf("FAQ generation failed for post %d: %w", t.postID, err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("FAQ generation task completed successfully",
		"faqs_created", len(created))
	return nil
}
