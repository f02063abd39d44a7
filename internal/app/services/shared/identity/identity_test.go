package identity

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/utils"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_FetchIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("Registered Identity", func(t *testing.T) {
		backend := NewMemoryBackend(false)
		backend.Register(models.Identity{ID: "u1", DisplayName: "Ann", Email: "a@x.io"})

		identity, err := backend.FetchIdentity(ctx, models.Principal{UserID: "u1", SessionHandle: "s1"})
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "Ann", identity.DisplayName)
	})

	t.Run("Unknown Without Auto Provision", func(t *testing.T) {
		backend := NewMemoryBackend(false)

		identity, err := backend.FetchIdentity(ctx, models.Principal{UserID: "u1", Email: "a@x.io"})
		require.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("Auto Provision From Claims", func(t *testing.T) {
		backend := NewMemoryBackend(true)

		identity, err := backend.FetchIdentity(ctx, models.Principal{UserID: "u7", Email: "g@x.io", DisplayName: "Gil"})
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "g@x.io", identity.Email)
		assert.Empty(t, identity.Metadata.Role)
	})

	t.Run("Revoked Session Reads As Signed Out", func(t *testing.T) {
		backend := NewMemoryBackend(false)
		backend.Register(models.Identity{ID: "u1"})
		principal := models.Principal{UserID: "u1", SessionHandle: "s1"}

		require.NoError(t, backend.RevokeSession(ctx, principal))
		identity, err := backend.FetchIdentity(ctx, principal)
		require.NoError(t, err)
		assert.Nil(t, identity)

		other, err := backend.FetchIdentity(ctx, models.Principal{UserID: "u1", SessionHandle: "s2"})
		require.NoError(t, err)
		assert.NotNil(t, other, "other sessions of the same user stay valid")
	})

	t.Run("Injected Failure", func(t *testing.T) {
		backend := NewMemoryBackend(false)
		backend.FailFetchesWith(errors.New("provider down"))

		_, err := backend.FetchIdentity(ctx, models.Principal{UserID: "u1"})
		assert.Error(t, err)
	})
}

func TestMemoryBackend_UpdateMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes Role", func(t *testing.T) {
		backend := NewMemoryBackend(false)
		backend.Register(models.Identity{ID: "u1"})

		identity, err := backend.UpdateMetadata(ctx, "u1", models.IdentityMetadata{Role: models.RoleDoctor})
		require.NoError(t, err)
		assert.Equal(t, models.RoleDoctor, identity.Metadata.Role)

		reloaded, err := backend.FetchIdentity(ctx, models.Principal{UserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleDoctor, reloaded.Metadata.Role)
	})

	t.Run("Rejected Update Leaves Metadata", func(t *testing.T) {
		backend := NewMemoryBackend(false)
		backend.Register(models.Identity{ID: "u1"})
		backend.FailUpdatesWith(errors.New("rejected"))

		_, err := backend.UpdateMetadata(ctx, "u1", models.IdentityMetadata{Role: models.RoleAdmin})
		assert.Error(t, err)

		backend.FailUpdatesWith(nil)
		reloaded, _ := backend.FetchIdentity(ctx, models.Principal{UserID: "u1"})
		assert.Empty(t, reloaded.Metadata.Role)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := NewMemoryBackend(false).UpdateMetadata(ctx, "ghost", models.IdentityMetadata{Role: models.RoleAdmin})
		assert.Error(t, err)
	})
}

func TestJWTVerifier(t *testing.T) {
	verifier := NewJWTVerifier("secret")

	t.Run("No Header Means No Session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/session", nil)
		principal, err := verifier.Verify(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Nil(t, principal)
	})

	t.Run("Valid Bearer", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT(models.Principal{UserID: "u1", SessionHandle: "s1"}, "secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		principal, err := verifier.Verify(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, "u1", principal.UserID)
		assert.Equal(t, "s1", principal.SessionHandle)
	})

	t.Run("Garbage Bearer", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/session", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		_, err := verifier.Verify(httptest.NewRecorder(), req)
		assert.Error(t, err)
	})
}

func TestIdentityFromMetadata(t *testing.T) {
	identity := identityFromMetadata("u1", "a@x.io", map[string]interface{}{
		"first_name": "Ann",
		"role":       "DOCTOR",
	})
	assert.Equal(t, "Ann", identity.DisplayName)
	assert.Equal(t, models.RoleDoctor, identity.Metadata.Role)

	identity = identityFromMetadata("u1", "", map[string]interface{}{
		"full_name":  "Ann Lee",
		"first_name": "Ann",
	})
	assert.Equal(t, "Ann Lee", identity.DisplayName)
	assert.Empty(t, identity.Metadata.Role)
}
