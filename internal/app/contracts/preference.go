package contracts

import (
	"context"
	"hms-portal-service/internal/app/models"
)

type PreferenceStore interface {
	Read(ctx context.Context) (models.ThemePreference, error)
	Toggle(ctx context.Context) (models.ThemePreference, error)
}
