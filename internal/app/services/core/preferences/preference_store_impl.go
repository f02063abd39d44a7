package preferences

import (
	"context"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

// ThemeApplier is notified after every persisted toggle.
type ThemeApplier func(ctx context.Context, preference models.ThemePreference)

type preferenceStore struct {
	mu       sync.Mutex
	store    contracts.PersistedStore
	appliers []ThemeApplier
	Log      *zap.Logger
}

func NewPreferenceStore(store contracts.PersistedStore, logger *zap.Logger, appliers ...ThemeApplier) contracts.PreferenceStore {
	return &preferenceStore{
		store:    store,
		appliers: appliers,
		Log:      logger,
	}
}

func (p *preferenceStore) Read(ctx context.Context) (models.ThemePreference, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readLocked(ctx)
}

// Toggle flips the stored theme and persists the literal "dark" or "light".
func (p *preferenceStore) Toggle(ctx context.Context) (models.ThemePreference, error) {
	requestID := utils.GetRequestID(ctx)

	p.mu.Lock()
	current, err := p.readLocked(ctx)
	if err != nil {
		p.mu.Unlock()
		return models.ThemePreference{}, err
	}

	next := themePreference(!current.Dark)
	if err := p.store.Set(ctx, constvars.StoreKeyTheme, next.Theme); err != nil {
		p.mu.Unlock()
		p.Log.Error("preferenceStore.Toggle error persisting theme",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return models.ThemePreference{}, err
	}
	p.mu.Unlock()

	p.Log.Info("preferenceStore.Toggle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingThemeKey, next.Theme),
	)
	for _, apply := range p.appliers {
		apply(ctx, next)
	}
	return next, nil
}

func (p *preferenceStore) readLocked(ctx context.Context) (models.ThemePreference, error) {
	raw, found, err := p.store.Get(ctx, constvars.StoreKeyTheme)
	if err != nil {
		return models.ThemePreference{}, err
	}
	if !found {
		return themePreference(true), nil
	}

	switch raw {
	case constvars.ThemeDark:
		return themePreference(true), nil
	case constvars.ThemeLight:
		return themePreference(false), nil
	default:
		p.Log.Warn("preferenceStore.Read stored theme is malformed, using default",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(exceptions.ErrMalformedPersistedData(nil, constvars.StoreKeyTheme)),
		)
		return themePreference(true), nil
	}
}

func themePreference(dark bool) models.ThemePreference {
	if dark {
		return models.ThemePreference{Dark: true, Theme: constvars.ThemeDark, RootClass: constvars.ThemeDark}
	}
	return models.ThemePreference{Dark: false, Theme: constvars.ThemeLight}
}
