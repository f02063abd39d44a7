package config

import (
	"hms-portal-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig_Defaults(t *testing.T) {
	cfg := NewInternalConfig()

	assert.Equal(t, constvars.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, constvars.IdentityProviderLocal, cfg.Identity.Provider)
	assert.Equal(t, "api", cfg.App.EndpointPrefix)
	assert.Equal(t, "v1", cfg.App.Version)
	assert.Equal(t, 30, cfg.Identity.RoleAssignmentLockTTLSeconds)
	assert.False(t, cfg.Events.Enabled)
	assert.False(t, cfg.Snapshot.Enabled)
}

func TestNewInternalConfig_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", constvars.StoreDriverRedis)
	t.Setenv("IDENTITY_PROVIDER", constvars.IdentityProviderSupertokens)
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("APP_REQUEST_TIMEOUT_IN_SECONDS", "3")

	cfg := NewInternalConfig()

	assert.Equal(t, constvars.StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, constvars.IdentityProviderSupertokens, cfg.Identity.Provider)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, 3, cfg.App.RequestTimeoutInSeconds)
}

func TestNewDriverConfig_FromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := NewDriverConfig()

	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, "/auth", cfg.Supertoken.ApiBasePath)
}

func TestNewInternalConfig_NonPositiveLockTTL(t *testing.T) {
	for _, value := range []string{"0", "-5"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("IDENTITY_ROLE_ASSIGNMENT_LOCK_TTL_SECONDS", value)

			cfg := NewInternalConfig()

			assert.Equal(t, 30, cfg.Identity.RoleAssignmentLockTTLSeconds)
		})
	}
}

func TestInternalConfig_Validate(t *testing.T) {
	t.Run("Local Provider Without Secret", func(t *testing.T) {
		t.Setenv("IDENTITY_PROVIDER", constvars.IdentityProviderLocal)
		t.Setenv("IDENTITY_LOCAL_JWT_SECRET", "")

		cfg := NewInternalConfig()

		assert.Empty(t, cfg.Identity.LocalJWTSecret)
		assert.Error(t, cfg.Validate())
	})

	t.Run("Local Provider With Secret", func(t *testing.T) {
		t.Setenv("IDENTITY_PROVIDER", constvars.IdentityProviderLocal)
		t.Setenv("IDENTITY_LOCAL_JWT_SECRET", "s3cret")

		assert.NoError(t, NewInternalConfig().Validate())
	})

	t.Run("Supertokens Provider Ignores Local Secret", func(t *testing.T) {
		t.Setenv("IDENTITY_PROVIDER", constvars.IdentityProviderSupertokens)
		t.Setenv("IDENTITY_LOCAL_JWT_SECRET", "")

		assert.NoError(t, NewInternalConfig().Validate())
	})
}
