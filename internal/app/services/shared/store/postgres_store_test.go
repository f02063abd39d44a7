package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockPostgresStore(t *testing.T) (*postgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(db, zap.NewNop()).(*postgresStore), mock
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectQuery(postgresGetQuery).
			WithArgs("hms:directory").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"p1"}]`))

		value, found, err := s.Get(ctx, "hms:directory")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"p1"}]`, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Never Written", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectQuery(postgresGetQuery).
			WithArgs("hms:theme").
			WillReturnError(sql.ErrNoRows)

		value, found, err := s.Get(ctx, "hms:theme")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("Query Failure", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectQuery(postgresGetQuery).
			WithArgs("hms:theme").
			WillReturnError(errors.New("connection reset"))

		_, found, err := s.Get(ctx, "hms:theme")
		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestPostgresStore_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectExec(postgresSetQuery).
			WithArgs("hms:theme", "light").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Set(ctx, "hms:theme", "light"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exec Failure", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectExec(postgresSetQuery).
			WithArgs("hms:theme", "light").
			WillReturnError(errors.New("read-only transaction"))

		assert.Error(t, s.Set(ctx, "hms:theme", "light"))
	})
}
