package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/domain"
	"github.com/rafysite/faqreator/internal/platform/logger"
	"github.com/rafysite/faqreator/internal/store"
	"github.com/rafysite/faqreator/internal/task"
)

// TaskCreator builds a generation task for one post at a given fire time.
// Satisfied by task.FAQGenerationTaskFactory.
type TaskCreator interface {
	CreateTask(postID int64, runAt time.Time) (task.Task, error)
}

// TaskSubmitter persists and dispatches a task. Satisfied by task.TaskRunner.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// ScheduleResult summarizes one batch scheduling run. The no-posts case
// serializes as a bare message body with no scheduled count.
type ScheduleResult struct {
	// Scheduled is the number of generation jobs queued.
	Scheduled int `json:"scheduled,omitempty"`

	// Message carries a status note when no eligible posts were found.
	Message string `json:"message,omitempty"`
}

// ScheduleService queues one FAQ generation job per eligible source post,
// spacing consecutive jobs by the configured interval so upstream rate limits
// are respected.
type ScheduleService struct {
	postStore store.PostStore
	creator   TaskCreator
	submitter TaskSubmitter
	content   config.ContentConfig
	messages  config.MessageConfig
	logger    *slog.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewScheduleService creates a new ScheduleService with the given dependencies.
// Returns an error if any dependency is nil.
func NewScheduleService(
	postStore store.PostStore,
	creator TaskCreator,
	submitter TaskSubmitter,
	content config.ContentConfig,
	messages config.MessageConfig,
	log *slog.Logger,
) (*ScheduleService, error) {
	if postStore == nil {
		return nil, fmt.Errorf("%w: post store", ErrNilDependency)
	}
	if creator == nil {
		return nil, fmt.Errorf("%w: task creator", ErrNilDependency)
	}
	if submitter == nil {
		return nil, fmt.Errorf("%w: task submitter", ErrNilDependency)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &ScheduleService{
		postStore: postStore,
		creator:   creator,
		submitter: submitter,
		content:   content,
		messages:  messages,
		logger:    log.With("component", "schedule_service"),
		now:       time.Now,
	}, nil
}

// ScheduleAll queues one generation job for every published source post.
// The i-th job fires i intervals after the batch starts, so a batch of N
// posts spreads its upstream calls over N-1 intervals.
//
// Posts are scheduled in creation order. A submit failure for one post is
// logged and does not prevent later posts from being scheduled.
func (s *ScheduleService) ScheduleAll(ctx context.Context) (*ScheduleResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids, err := s.postStore.ListIDsByTypeAndStatus(ctx, s.content.CheckType, domain.PostStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to list source posts: %w", err)
	}

	if len(ids) == 0 {
		log.Info("no source posts to schedule")
		return &ScheduleResult{Message: s.messages.NoPostsFound}, nil
	}

	interval := time.Duration(s.content.ScheduleIntervalSeconds) * time.Second
	start := s.now()
	scheduled := 0

	for i, id := range ids {
		runAt := start.Add(time.Duration(i) * interval)

		t, err := s.creator.CreateTask(id, runAt)
		if err != nil {
			log.Error("failed to create generation task",
				"post_id", id,
				"error", err)
			continue
		}

		if err := s.submitter.Submit(ctx, t); err != nil {
			log.Error("failed to submit generation task",
				"post_id", id,
				"error", err)
			continue
		}

		scheduled++
	}

	log.Info("scheduled FAQ generation batch",
		"posts_found", len(ids),
		"jobs_scheduled", scheduled,
		"interval", interval)

	return &ScheduleResult{Scheduled: scheduled}, nil
}
