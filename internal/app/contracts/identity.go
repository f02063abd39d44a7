package contracts

import (
	"context"
	"hms-portal-service/internal/app/models"
	"net/http"
)

// IdentityBackend is the remote identity provider API.
type IdentityBackend interface {
	// FetchIdentity returns nil, nil when the provider does not recognise the
	// principal or its session has been revoked.
	FetchIdentity(ctx context.Context, principal models.Principal) (*models.Identity, error)
	UpdateMetadata(ctx context.Context, userID string, patch models.IdentityMetadata) (*models.Identity, error)
	RevokeSession(ctx context.Context, principal models.Principal) error
}

// SessionVerifier turns a request credential into a principal. A nil principal with a
// nil error means the request carries no session.
type SessionVerifier interface {
	Verify(w http.ResponseWriter, r *http.Request) (*models.Principal, error)
}
