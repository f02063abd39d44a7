package store

import (
	"context"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type redisStore struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewRedisStore(redisRepo contracts.RedisRepository, logger *zap.Logger) contracts.PersistedStore {
	return &redisStore{
		redisRepo: redisRepo,
		Log:       logger,
	}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	requestID := utils.GetRequestID(ctx)

	raw, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		s.Log.Error("redisStore.Get error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return "", false, exceptions.ErrStoreGet(err, key)
	}
	if raw == "" {
		return "", false, nil
	}

	var value string
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.Log.Warn("redisStore.Get value is not a JSON string, returning it verbatim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStoreKey, key),
		)
		return raw, true, nil
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	err := s.redisRepo.Set(ctx, key, value, 0)
	if err != nil {
		s.Log.Error("redisStore.Set error calling redisRepo.Set",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return exceptions.ErrStoreSet(err, key)
	}
	return nil
}
