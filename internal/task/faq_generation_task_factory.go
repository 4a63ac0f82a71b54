package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// FAQGenerationTaskFactory creates FAQGenerationTask instances and
// reconstructs them from persisted records during recovery.
type FAQGenerationTaskFactory struct {
	faqService FAQGenerationService
	logger     *slog.Logger
}

// Ensure the factory can act as the runner's recovery resolver
var _ Resolver = (*FAQGenerationTaskFactory)(nil)

// NewFAQGenerationTaskFactory creates a new factory for FAQGenerationTasks
func NewFAQGenerationTaskFactory(
	faqService FAQGenerationService,
	logger *slog.Logger,
) *FAQGenerationTaskFactory {
	return &FAQGenerationTaskFactory{
		faqService: faqService,
		logger:     logger.With("component", "faq_generation_task_factory"),
	}
}

// CreateTask creates a new FAQGenerationTask for the specified post,
// eligible to run at the given fire time.
func (f *FAQGenerationTaskFactory) CreateTask(postID int64, runAt time.Time) (Task, error) {
	task, err := NewFAQGenerationTask(postID, runAt, f.faqService, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ResolveTask reconstructs an executable FAQGenerationTask from its persisted
// record, preserving the record's identity and fire time.
func (f *FAQGenerationTaskFactory) ResolveTask(record *TaskRecord) (Task, error) {
	if record.Type != TaskTypeFAQGeneration {
		return nil, fmt.Errorf("unknown task type %q", record.Type)
	}

	var payload faqGenerationPayload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	return newFAQGenerationTaskWithID(record.ID, payload.PostID, record.RunAt, f.faqService, f.logger)
}
