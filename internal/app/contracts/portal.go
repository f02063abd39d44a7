package contracts

import (
	"context"
	"hms-portal-service/internal/app/models"
)

type PortalUsecase interface {
	Screen(ctx context.Context, principal *models.Principal, page string) (*models.Screen, error)
	SelectRole(ctx context.Context, principal *models.Principal, role models.Role) (*models.Screen, error)
	SignOut(ctx context.Context, principal *models.Principal) (*models.Screen, error)
	UpdateProfile(ctx context.Context, principal *models.Principal, patch models.UserPatch) (*models.User, error)
	ListUsers(ctx context.Context, principal *models.Principal) ([]models.User, error)
	ReplaceDirectory(ctx context.Context, principal *models.Principal, users []models.User) ([]models.User, error)
	Theme(ctx context.Context) (models.ThemePreference, error)
	ToggleTheme(ctx context.Context) (models.ThemePreference, error)
}
