package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("duplicate key")))
}

func TestClassifyMarksTransientFailures(t *testing.T) {
	err := classify("count tasks", context.DeadlineExceeded)
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = classify("count tasks", &pgconn.PgError{Code: pgerrcode.QueryCanceled})
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)

	err = classify("count tasks", errors.New("syntax error"))
	assert.NotErrorIs(t, err, entity.ErrStorageUnavailable)
	assert.EqualError(t, err, "count tasks: syntax error")

	assert.NoError(t, classify("noop", nil))
}
