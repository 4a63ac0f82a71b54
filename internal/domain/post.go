package domain

import (
	"errors"
	"time"
)

// PostStatus represents the publication state of a content record.
type PostStatus string

// Possible post status values
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "publish"
)

// Common validation errors for Post
var (
	ErrEmptyPostType   = errors.New("post type cannot be empty")
	ErrEmptyPostTitle  = errors.New("post title cannot be empty")
	ErrInvalidPostStat = errors.New("invalid post status")
)

// Post is a content record. Source items carry the configured "check" type
// and are read-only to this service; generated FAQ items carry the
// configured "question" type and are created by the FAQ persister.
type Post struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Excerpt   string     `json:"excerpt,omitempty"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewPost creates a new Post with the given type, title and body.
// The ID is assigned by the store on creation.
// Returns an error if validation fails.
func NewPost(postType, title, body string, status PostStatus) (*Post, error) {
	post := &Post{
		Type:      postType,
		Title:     title,
		Body:      body,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.Type == "" {
		return ErrEmptyPostType
	}

	if p.Title == "" {
		return ErrEmptyPostTitle
	}

	if !isValidPostStatus(p.Status) {
		return ErrInvalidPostStat
	}

	return nil
}

// isValidPostStatus checks if the given status is a valid PostStatus.
func isValidPostStatus(status PostStatus) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished:
		return true
	default:
		return false
	}
}
