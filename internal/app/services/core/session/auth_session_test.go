package session

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockIdentityBackend struct {
	mock.Mock
}

func (m *MockIdentityBackend) FetchIdentity(ctx context.Context, principal models.Principal) (*models.Identity, error) {
	args := m.Called(ctx, principal)
	identity, _ := args.Get(0).(*models.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityBackend) UpdateMetadata(ctx context.Context, userID string, patch models.IdentityMetadata) (*models.Identity, error) {
	args := m.Called(ctx, userID, patch)
	identity, _ := args.Get(0).(*models.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityBackend) RevokeSession(ctx context.Context, principal models.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

var testPrincipal = &models.Principal{UserID: "u1", SessionHandle: "s1"}

func TestAuthSession_AwaitLoad(t *testing.T) {
	t.Run("No Principal Loads Signed Out", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		sess := NewAuthSession(backend, nil, zap.NewNop())

		assert.True(t, sess.Loaded())
		require.NoError(t, sess.AwaitLoad(context.Background()))
		assert.False(t, sess.SignedIn())
		assert.Nil(t, sess.Identity())
		backend.AssertNotCalled(t, "FetchIdentity", mock.Anything, mock.Anything)
	})

	t.Run("Known Identity", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).
			Return(&models.Identity{ID: "u1", Metadata: models.IdentityMetadata{Role: models.RoleDoctor}}, nil).Once()

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		assert.False(t, sess.Loaded())
		require.NoError(t, sess.AwaitLoad(context.Background()))
		require.NoError(t, sess.AwaitLoad(context.Background()))

		assert.True(t, sess.Loaded())
		assert.True(t, sess.SignedIn())
		assert.Equal(t, models.RoleDoctor, sess.Identity().Metadata.Role)
		backend.AssertExpectations(t)
	})

	t.Run("Unknown Principal Is Signed Out", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).Return(nil, nil)

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		require.NoError(t, sess.AwaitLoad(context.Background()))
		assert.True(t, sess.Loaded())
		assert.False(t, sess.SignedIn())
	})

	t.Run("Provider Error", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).Return(nil, errors.New("down"))

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		assert.Error(t, sess.AwaitLoad(context.Background()))
		assert.False(t, sess.Loaded())
	})

	t.Run("Deadline Leaves Session Loading", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).
			Run(func(mock.Arguments) { <-release }).
			Return(&models.Identity{ID: "u1"}, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		err := sess.AwaitLoad(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, sess.Loaded())
	})
}

func TestAuthSession_SetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirmed Write Updates Identity", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).Return(&models.Identity{ID: "u1"}, nil)
		backend.On("UpdateMetadata", mock.Anything, "u1", models.IdentityMetadata{Role: models.RolePatient}).
			Return(&models.Identity{ID: "u1", Metadata: models.IdentityMetadata{Role: models.RolePatient}}, nil)

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		require.NoError(t, sess.AwaitLoad(ctx))

		identity, err := sess.SetRole(ctx, models.RolePatient)
		require.NoError(t, err)
		assert.Equal(t, models.RolePatient, identity.Metadata.Role)
		assert.Equal(t, models.RolePatient, sess.Identity().Metadata.Role)
	})

	t.Run("Rejected Write Keeps Identity", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).Return(&models.Identity{ID: "u1"}, nil)
		backend.On("UpdateMetadata", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("rejected"))

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		require.NoError(t, sess.AwaitLoad(ctx))

		_, err := sess.SetRole(ctx, models.RoleAdmin)
		assert.Error(t, err)
		assert.Empty(t, sess.Identity().Metadata.Role)
	})

	t.Run("Signed Out", func(t *testing.T) {
		sess := NewAuthSession(new(MockIdentityBackend), nil, zap.NewNop())
		_, err := sess.SetRole(ctx, models.RoleAdmin)
		assert.Error(t, err)
	})
}

func TestAuthSession_SignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("Revokes And Clears", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).Return(&models.Identity{ID: "u1"}, nil)
		backend.On("RevokeSession", mock.Anything, *testPrincipal).Return(nil).Once()

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		require.NoError(t, sess.AwaitLoad(ctx))
		require.NoError(t, sess.SignOut(ctx))

		assert.False(t, sess.SignedIn())
		assert.Nil(t, sess.Identity())
		backend.AssertExpectations(t)
	})

	t.Run("Provider Failure Keeps Session", func(t *testing.T) {
		backend := new(MockIdentityBackend)
		backend.On("FetchIdentity", mock.Anything, *testPrincipal).Return(&models.Identity{ID: "u1"}, nil)
		backend.On("RevokeSession", mock.Anything, *testPrincipal).Return(errors.New("down"))

		sess := NewAuthSession(backend, testPrincipal, zap.NewNop())
		require.NoError(t, sess.AwaitLoad(ctx))

		assert.Error(t, sess.SignOut(ctx))
		assert.True(t, sess.SignedIn())
	})
}
