package contracts

import (
	"context"
	"hms-portal-service/internal/app/models"
)

type UserDirectory interface {
	Seed(ctx context.Context) error
	Get(id string) (models.User, bool)
	List() []models.User
	Upsert(ctx context.Context, id string, factory func() models.User) (models.User, bool, error)
	Merge(ctx context.Context, id string, patch models.UserPatch) (models.User, bool, error)
	ReplaceAll(ctx context.Context, users []models.User) error
}
