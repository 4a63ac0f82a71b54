package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/domain"
	"github.com/rafysite/faqreator/internal/generation"
	"github.com/rafysite/faqreator/internal/store"
)

// mockPostStore is an in-memory PostStore for service tests.
type mockPostStore struct {
	posts     map[int64]*domain.Post
	nextID    int64
	created   []*domain.Post
	links     map[int64][]int64
	linkKeys  map[int64]string
	createErr error
	listIDs   []int64
	linked    []*domain.Post

	findLinkedType   string
	findLinkedStatus domain.PostStatus
	findLinkedKey    string
}

func newMockPostStore() *mockPostStore {
	return &mockPostStore{
		posts:    make(map[int64]*domain.Post),
		nextID:   100,
		links:    make(map[int64][]int64),
		linkKeys: make(map[int64]string),
	}
}

func (m *mockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err := post.Validate(); err != nil {
		return err
	}
	m.nextID++
	post.ID = m.nextID
	m.created = append(m.created, post)
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	return post, nil
}

func (m *mockPostStore) ListIDsByTypeAndStatus(ctx context.Context, postType string, status domain.PostStatus) ([]int64, error) {
	return m.listIDs, nil
}

func (m *mockPostStore) SetLinks(ctx context.Context, questionID int64, linkKey string, sourceIDs []int64) error {
	m.links[questionID] = sourceIDs
	m.linkKeys[questionID] = linkKey
	return nil
}

func (m *mockPostStore) FindLinked(ctx context.Context, postType string, status domain.PostStatus, linkKey string, sourceID int64) ([]*domain.Post, error) {
	m.findLinkedType = postType
	m.findLinkedStatus = status
	m.findLinkedKey = linkKey
	return m.linked, nil
}

func (m *mockPostStore) WithTx(tx *sql.Tx) store.PostStore { return m }

// mockGenerator records the request and returns a canned decoded response.
type mockGenerator struct {
	requests []generation.Request
	response map[string]any
	err      error
}

func (m *mockGenerator) Generate(ctx context.Context, req generation.Request) (map[string]any, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func testContentConfig() config.ContentConfig {
	return config.ContentConfig{
		CheckType:               "check",
		QuestionType:            "question",
		LinkKey:                 "faq_check",
		DefaultMaxItems:         5,
		ScheduleIntervalSeconds: 60,
	}
}

func testOpenAIConfig() config.OpenAIConfig {
	return config.OpenAIConfig{
		Model:       "gpt-4o-mini",
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

func newTestFAQService(t *testing.T, posts *mockPostStore, gen *mockGenerator, pairCount int) (*FAQService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for i := 0; i < pairCount; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	svc, err := NewFAQService(db, posts, gen, testOpenAIConfig(), testContentConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return svc, mock
}

func sourcePost(id int64) *domain.Post {
	return &domain.Post{
		ID:     id,
		Type:   "check",
		Title:  "Como declarar imposto de renda",
		Body:   "Um guia completo sobre a declaração anual.",
		Status: domain.PostStatusPublished,
	}
}

func TestGenerateForPostCreatesLinkedFAQs(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = sourcePost(42)

	gen := &mockGenerator{
		response: map[string]any{
			"perguntas": []any{
				map[string]any{"pergunta": "Quem precisa declarar?", "resposta": "Todos acima do limite de renda."},
				map[string]any{"pergunta": "Qual o prazo?", "resposta": "Até o fim de abril."},
			},
		},
	}

	svc, mock := newTestFAQService(t, posts, gen, 2)

	created, err := svc.GenerateForPost(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, "Quem precisa declarar?", created[0].Title)
	assert.Equal(t, "Qual o prazo?", created[1].Title)

	require.Len(t, posts.created, 2)
	for _, p := range posts.created {
		assert.Equal(t, "question", p.Type)
		assert.Equal(t, domain.PostStatusPublished, p.Status)
		assert.Equal(t, []int64{42}, posts.links[p.ID])
		assert.Equal(t, "faq_check", posts.linkKeys[p.ID])
	}

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, generation.SystemInstruction, req.SystemPrompt)
	assert.Contains(t, req.UserPrompt, "Como declarar imposto de renda")
	assert.Contains(t, req.UserPrompt, "crie 5 perguntas")
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
	assert.Equal(t, 1000, req.MaxTokens)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateForPostSkipsInvalidPairs(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = sourcePost(42)

	gen := &mockGenerator{
		response: map[string]any{
			"perguntas": []any{
				map[string]any{"pergunta": "Pergunta válida?", "resposta": "Resposta válida."},
				map[string]any{"pergunta": "Sem resposta?", "resposta": "   "},
				"not an object",
			},
		},
	}

	svc, mock := newTestFAQService(t, posts, gen, 1)

	created, err := svc.GenerateForPost(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Pergunta válida?", created[0].Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateForPostUnknownPost(t *testing.T) {
	posts := newMockPostStore()
	gen := &mockGenerator{}

	svc, _ := newTestFAQService(t, posts, gen, 0)

	_, err := svc.GenerateForPost(context.Background(), 999)
	assert.ErrorIs(t, err, ErrInvalidPost)
	assert.Empty(t, gen.requests, "no upstream call for an unknown post")
	assert.Empty(t, posts.created)
}

func TestGenerateForPostWrongType(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = &domain.Post{
		ID:     42,
		Type:   "question",
		Title:  "Já sou uma FAQ",
		Status: domain.PostStatusPublished,
	}
	gen := &mockGenerator{}

	svc, _ := newTestFAQService(t, posts, gen, 0)

	_, err := svc.GenerateForPost(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidPost)
	assert.Empty(t, gen.requests)
}

func TestGenerateForPostTransportFailurePassesThrough(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = sourcePost(42)
	gen := &mockGenerator{err: generation.ErrTransportFailure}

	svc, _ := newTestFAQService(t, posts, gen, 0)

	_, err := svc.GenerateForPost(context.Background(), 42)
	assert.ErrorIs(t, err, generation.ErrTransportFailure)
	assert.Empty(t, posts.created)
}

func TestGenerateForPostSchemaViolation(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = sourcePost(42)
	gen := &mockGenerator{response: map[string]any{"wrong_key": []any{}}}

	svc, _ := newTestFAQService(t, posts, gen, 0)

	_, err := svc.GenerateForPost(context.Background(), 42)
	assert.ErrorIs(t, err, generation.ErrSchemaViolation)
	assert.Empty(t, posts.created)
}

func TestGenerateForPostEmptyListIsSuccess(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = sourcePost(42)
	gen := &mockGenerator{response: map[string]any{"perguntas": []any{}}}

	svc, _ := newTestFAQService(t, posts, gen, 0)

	created, err := svc.GenerateForPost(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestGenerateForPostPersistFailureSkipsPair(t *testing.T) {
	posts := newMockPostStore()
	posts.posts[42] = sourcePost(42)
	posts.createErr = assert.AnError

	gen := &mockGenerator{
		response: map[string]any{
			"perguntas": []any{
				map[string]any{"pergunta": "Pergunta?", "resposta": "Resposta."},
			},
		},
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc, err := NewFAQService(db, posts, gen, testOpenAIConfig(), testContentConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	created, err := svc.GenerateForPost(context.Background(), 42)
	require.NoError(t, err, "a failed pair is skipped, not fatal")
	assert.Empty(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFAQsForPost(t *testing.T) {
	posts := newMockPostStore()
	posts.linked = []*domain.Post{
		{ID: 101, Type: "question", Title: "Pergunta?", Body: "Resposta."},
	}

	svc, _ := newTestFAQService(t, posts, &mockGenerator{}, 0)

	faqs, err := svc.ListFAQsForPost(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Pergunta?", faqs[0].Title)

	// Only published question posts under the configured link key are listed.
	assert.Equal(t, "question", posts.findLinkedType)
	assert.Equal(t, domain.PostStatusPublished, posts.findLinkedStatus)
	assert.Equal(t, "faq_check", posts.findLinkedKey)
}
