package store

import (
	"context"
	"database/sql"
	"errors"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// PostgresTable is created by the embedded migrations in drivers/database.
const PostgresTable = "portal_kv"

const (
	postgresGetQuery = `SELECT value FROM portal_kv WHERE key = $1`
	postgresSetQuery = `INSERT INTO portal_kv (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

type postgresStore struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPostgresStore(db *sql.DB, logger *zap.Logger) contracts.PersistedStore {
	return &postgresStore{
		DB:  db,
		Log: logger,
	}
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, postgresGetQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.Log.Error("postgresStore.Get error calling QueryRowContext",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return "", false, exceptions.ErrPostgresQuery(err, PostgresTable)
	}
	return value, true, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx, postgresSetQuery, key, value)
	if err != nil {
		s.Log.Error("postgresStore.Set error calling ExecContext",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return exceptions.ErrPostgresUpsert(err, PostgresTable)
	}
	return nil
}
