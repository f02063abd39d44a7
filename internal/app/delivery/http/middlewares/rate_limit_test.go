package middlewares

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/services/shared/identity"
	"hms-portal-service/internal/app/services/shared/ratelimiter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func TestRoleSelectionQuota(t *testing.T) {
	newHandler := func(repo *MockRedisRepository) http.Handler {
		m := NewMiddlewares(
			zap.NewNop(),
			identity.NewJWTVerifier(testJWTSecret),
			ratelimiter.NewResourceLimiter(repo, zap.NewNop()),
			&config.InternalConfig{App: config.App{RoleSelectionRatePerMinute: 2}},
		)
		return m.RoleSelectionQuota(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}
	send := func(handler http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/session/role", nil)
		req.RemoteAddr = "10.0.0.9:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}
	ipKey := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "ROLE-SELECTION:ip:10.0.0.9:")
	})

	t.Run("Within Quota", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("IncrementWithTTL", mock.Anything, ipKey, 61*time.Second).Return(1, nil)

		assert.Equal(t, http.StatusOK, send(newHandler(repo)).Code)
		repo.AssertExpectations(t)
	})

	t.Run("Quota Exceeded", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("IncrementWithTTL", mock.Anything, ipKey, 61*time.Second).Return(3, nil)

		rr := send(newHandler(repo))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	})

	t.Run("Redis Unavailable", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("IncrementWithTTL", mock.Anything, ipKey, 61*time.Second).Return(0, errors.New("connection refused"))

		assert.Equal(t, http.StatusOK, send(newHandler(repo)).Code)
	})
}
