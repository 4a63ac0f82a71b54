package store

import (
	"context"
	"database/sql"

	"github.com/rafysite/faqreator/internal/domain"
)

// PostStore defines the interface for content record persistence.
// Source ("check") posts are created externally and read-only here;
// question posts and their source links are created by the FAQ persister.
type PostStore interface {
	// Create saves a new post to the store and assigns its ID.
	// It handles domain validation internally.
	// Returns validation errors from the domain Post if data is invalid.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// ListIDsByTypeAndStatus retrieves the IDs of all posts with the given
	// type and status, in creation order. Returns an empty slice when none
	// match.
	ListIDsByTypeAndStatus(ctx context.Context, postType string, status domain.PostStatus) ([]int64, error)

	// SetLinks replaces the set of source post IDs linked to the given
	// question post under the named link key.
	SetLinks(ctx context.Context, questionID int64, linkKey string, sourceIDs []int64) error

	// FindLinked retrieves all posts of the given type and status whose link
	// set under the named key contains the source ID. Returns an empty slice
	// when none match.
	FindLinked(ctx context.Context, postType string, status domain.PostStatus, linkKey string, sourceID int64) ([]*domain.Post, error)

	// WithTx returns a new PostStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) PostStore
}
