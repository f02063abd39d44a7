package preferences

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/app/services/shared/store"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPersistedStore struct {
	mock.Mock
}

func (m *MockPersistedStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPersistedStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestPreferenceStore_Read(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		stored   *string
		expected bool
	}{
		{name: "Default Is Dark", stored: nil, expected: true},
		{name: "Stored Dark", stored: strPtr("dark"), expected: true},
		{name: "Stored Light", stored: strPtr("light"), expected: false},
		{name: "Malformed Falls Back To Dark", stored: strPtr("purple"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backing := store.NewMemoryStore()
			if tt.stored != nil {
				require.NoError(t, backing.Set(ctx, "theme", *tt.stored))
			}

			pref, err := NewPreferenceStore(backing, zap.NewNop()).Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pref.Dark)
		})
	}
}

func TestPreferenceStore_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip Survives Restart", func(t *testing.T) {
		backing := store.NewMemoryStore()
		var applied []models.ThemePreference
		prefs := NewPreferenceStore(backing, zap.NewNop(), func(ctx context.Context, p models.ThemePreference) {
			applied = append(applied, p)
		})

		pref, err := prefs.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ThemePreference{Dark: false, Theme: "light"}, pref)

		raw, _, _ := backing.Get(ctx, "theme")
		assert.Equal(t, "light", raw)

		restarted, err := NewPreferenceStore(backing, zap.NewNop()).Read(ctx)
		require.NoError(t, err)
		assert.False(t, restarted.Dark)

		pref, err = prefs.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ThemePreference{Dark: true, Theme: "dark", RootClass: "dark"}, pref)
		require.Len(t, applied, 2)
	})

	t.Run("Persist Failure", func(t *testing.T) {
		mockStore := new(MockPersistedStore)
		mockStore.On("Get", mock.Anything, "theme").Return("dark", true, nil)
		mockStore.On("Set", mock.Anything, "theme", "light").Return(errors.New("down"))

		called := false
		prefs := NewPreferenceStore(mockStore, zap.NewNop(), func(ctx context.Context, p models.ThemePreference) {
			called = true
		})

		_, err := prefs.Toggle(ctx)
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func strPtr(s string) *string {
	return &s
}
