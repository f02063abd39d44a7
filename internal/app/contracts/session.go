package contracts

import (
	"context"
	"hms-portal-service/internal/app/models"
)

// AuthSession is the per-request view of the identity capability.
type AuthSession interface {
	Loaded() bool
	SignedIn() bool
	Identity() *models.Identity
	AwaitLoad(ctx context.Context) error
	SetRole(ctx context.Context, role models.Role) (*models.Identity, error)
	SignOut(ctx context.Context) error
}

type RoleWorkflow interface {
	Snapshot() models.Session
	Reconcile(ctx context.Context) (models.Session, error)
	SelectRole(ctx context.Context, role models.Role) (models.Session, error)
	SignOut(ctx context.Context) (models.Session, error)
	Navigate(page string) models.Session
}
