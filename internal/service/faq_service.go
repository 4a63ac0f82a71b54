package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/domain"
	"github.com/rafysite/faqreator/internal/generation"
	"github.com/rafysite/faqreator/internal/platform/logger"
	"github.com/rafysite/faqreator/internal/store"
)

// FAQService runs the FAQ generation pipeline for a single source post:
// load and validate the post, build the prompt, call the generator, validate
// the response shape, and persist each surviving question/answer pair as a
// linked FAQ post.
//
// It also serves the read side: listing the FAQ posts linked to a source post.
type FAQService struct {
	db        *sql.DB
	postStore store.PostStore
	generator generation.Generator
	openaiCfg config.OpenAIConfig
	content   config.ContentConfig
	logger    *slog.Logger
}

// NewFAQService creates a new FAQService with the given dependencies.
// Returns an error if any dependency is nil.
func NewFAQService(
	db *sql.DB,
	postStore store.PostStore,
	generator generation.Generator,
	openaiCfg config.OpenAIConfig,
	content config.ContentConfig,
	log *slog.Logger,
) (*FAQService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db", ErrNilDependency)
	}
	if postStore == nil {
		return nil, fmt.Errorf("%w: post store", ErrNilDependency)
	}
	if generator == nil {
		return nil, fmt.Errorf("%w: generator", ErrNilDependency)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &FAQService{
		db:        db,
		postStore: postStore,
		generator: generator,
		openaiCfg: openaiCfg,
		content:   content,
		logger:    log.With("component", "faq_service"),
	}, nil
}

// GenerateForPost runs the full generation pipeline for the given source post
// and returns a summary of each FAQ entry created.
//
// Returns ErrInvalidPost if the post does not exist or is not of the
// configured source type. Generator errors (generation.ErrTransportFailure,
// generation.ErrParseFailure) pass through unwrapped for the caller to map.
// Persistence failures of individual pairs are logged and skipped; they never
// fail the whole job.
func (s *FAQService) GenerateForPost(ctx context.Context, postID int64) ([]domain.CreatedFAQ, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("post_id", postID)

	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("source post not found")
			return nil, ErrInvalidPost
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	if post.Type != s.content.CheckType {
		log.Warn("post is not a source post", "post_type", post.Type)
		return nil, ErrInvalidPost
	}

	summary := generation.BuildSummary(post)
	prompt := generation.BuildPrompt(post.Title, summary, s.content.DefaultMaxItems)

	log.Info("requesting FAQ generation",
		"model", s.openaiCfg.Model,
		"max_items", s.content.DefaultMaxItems)

	decoded, err := s.generator.Generate(ctx, generation.Request{
		Model:        s.openaiCfg.Model,
		SystemPrompt: generation.SystemInstruction,
		UserPrompt:   prompt,
		Temperature:  s.openaiCfg.Temperature,
		MaxTokens:    s.openaiCfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	pairs, err := generation.ValidateResponse(decoded)
	if err != nil {
		return nil, err
	}

	created := make([]domain.CreatedFAQ, 0, len(pairs))
	for _, pair := range pairs {
		faq, err := s.persistPair(ctx, post.ID, pair)
		if err != nil {
			// A single bad pair must not sink its siblings.
			log.Error("failed to persist FAQ pair",
				"question", pair.Question,
				"error", err)
			continue
		}
		created = append(created, faq)
	}

	log.Info("FAQ generation completed",
		"pairs_received", len(pairs),
		"faqs_created", len(created))

	return created, nil
}

// persistPair creates one FAQ post and its source link atomically.
func (s *FAQService) persistPair(ctx context.Context, sourceID int64, pair domain.QAPair) (domain.CreatedFAQ, error) {
	post, err := domain.NewPost(s.content.QuestionType, pair.Question, pair.Answer, domain.PostStatusPublished)
	if err != nil {
		return domain.CreatedFAQ{}, fmt.Errorf("invalid FAQ post: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.postStore.WithTx(tx)

		if err := txStore.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create FAQ post: %w", err)
		}

		if err := txStore.SetLinks(ctx, post.ID, s.content.LinkKey, []int64{sourceID}); err != nil {
			return fmt.Errorf("failed to link FAQ post to source: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.CreatedFAQ{}, err
	}

	return domain.CreatedFAQ{
		QuestionID: post.ID,
		Title:      post.Title,
	}, nil
}

// ListFAQsForPost returns all published FAQ posts linked to the given source
// post, in creation order. An empty slice means no FAQ has been generated yet.
func (s *FAQService) ListFAQsForPost(ctx context.Context, postID int64) ([]*domain.Post, error) {
	faqs, err := s.postStore.FindLinked(ctx, s.content.QuestionType, domain.PostStatusPublished, s.content.LinkKey, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked FAQs: %w", err)
	}
	return faqs, nil
}
