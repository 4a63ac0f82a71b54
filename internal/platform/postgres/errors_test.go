package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/rafysite/faqreator/internal/store"
)

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
}

func TestMapErrorNoRows(t *testing.T) {
	err := MapError(sql.ErrNoRows)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMapErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode}
	err := MapError(pgErr)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.True(t, IsUniqueViolation(pgErr))
}

func TestMapErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "faq_links_question_id_fkey"}
	err := MapError(pgErr)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.True(t, IsForeignKeyViolation(pgErr))
}

func TestMapErrorPassthrough(t *testing.T) {
	original := errors.New("connection refused")
	assert.Equal(t, original, MapError(original))
}
