package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rafysite/faqreator/internal/domain"
	"github.com/rafysite/faqreator/internal/platform/logger"
	"github.com/rafysite/faqreator/internal/store"
)

// PostgresPostStore implements the store.PostStore interface using PostgreSQL
type PostgresPostStore struct {
	db store.DBTX
}

// NewPostgresPostStore creates a new PostgresPostStore
func NewPostgresPostStore(db store.DBTX) *PostgresPostStore {
	return &PostgresPostStore{
		db: db,
	}
}

// Ensure PostgresPostStore implements store.PostStore
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create saves a new post to the database and assigns its ID.
// Returns validation errors from the domain Post if data is invalid.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContext(ctx)

	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (type, title, body, excerpt, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		post.Type,
		post.Title,
		post.Body,
		post.Excerpt,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)

	if err != nil {
		log.Error("failed to create post",
			"post_type", post.Type,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID retrieves a post by its unique ID.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `
		SELECT id, type, title, body, excerpt, status, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	post := &domain.Post{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.Type,
		&post.Title,
		&post.Body,
		&post.Excerpt,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", MapError(err))
	}

	return post, nil
}

// ListIDsByTypeAndStatus retrieves the IDs of all posts with the given type
// and status, in creation order.
func (s *PostgresPostStore) ListIDsByTypeAndStatus(ctx context.Context, postType string, status domain.PostStatus) ([]int64, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id
		FROM posts
		WHERE type = $1 AND status = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, postType, status)
	if err != nil {
		log.Error("failed to list posts",
			"post_type", postType,
			"status", status,
			"error", err)
		return nil, fmt.Errorf("failed to list posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return ids, nil
}

// SetLinks replaces the set of source post IDs linked to the given question
// post under the named link key. Call within a transaction when atomicity
// with the post insert matters.
func (s *PostgresPostStore) SetLinks(ctx context.Context, questionID int64, linkKey string, sourceIDs []int64) error {
	log := logger.FromContext(ctx)

	deleteQuery := `
		DELETE FROM faq_links
		WHERE question_id = $1 AND link_key = $2
	`

	if _, err := s.db.ExecContext(ctx, deleteQuery, questionID, linkKey); err != nil {
		log.Error("failed to clear existing links",
			"question_id", questionID,
			"link_key", linkKey,
			"error", err)
		return fmt.Errorf("failed to clear existing links: %w", MapError(err))
	}

	insertQuery := `
		INSERT INTO faq_links (question_id, source_id, link_key)
		VALUES ($1, $2, $3)
	`

	for _, sourceID := range sourceIDs {
		if _, err := s.db.ExecContext(ctx, insertQuery, questionID, sourceID, linkKey); err != nil {
			log.Error("failed to insert link",
				"question_id", questionID,
				"source_id", sourceID,
				"link_key", linkKey,
				"error", err)
			return fmt.Errorf("failed to insert link: %w", MapError(err))
		}
	}

	return nil
}

// FindLinked retrieves all posts of the given type and status whose link set
// under the named key contains the source ID, in creation order.
func (s *PostgresPostStore) FindLinked(ctx context.Context, postType string, status domain.PostStatus, linkKey string, sourceID int64) ([]*domain.Post, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT p.id, p.type, p.title, p.body, p.excerpt, p.status, p.created_at, p.updated_at
		FROM posts p
		JOIN faq_links l ON l.question_id = p.id
		WHERE p.type = $1 AND p.status = $2 AND l.link_key = $3 AND l.source_id = $4
		ORDER BY p.created_at ASC, p.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, postType, status, linkKey, sourceID)
	if err != nil {
		log.Error("failed to query linked posts",
			"post_type", postType,
			"status", status,
			"link_key", linkKey,
			"source_id", sourceID,
			"error", err)
		return nil, fmt.Errorf("failed to query linked posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post := &domain.Post{}
		if err := rows.Scan(
			&post.ID,
			&post.Type,
			&post.Title,
			&post.Body,
			&post.Excerpt,
			&post.Status,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan linked post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating linked post rows: %w", err)
	}

	return posts, nil
}

// WithTx returns a new PostStore instance that uses the provided transaction.
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return NewPostgresPostStore(tx)
}
