package identity

import (
	"context"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/exceptions"
	"sync"
)

// MemoryBackend is an in-process identity provider used for local runs and tests.
type MemoryBackend struct {
	mu            sync.RWMutex
	identities    map[string]models.Identity
	revoked       map[string]bool
	autoProvision bool

	fetchErr  error
	updateErr error
	revokeErr error
}

// NewMemoryBackend creates an empty backend. With autoProvision, an unknown principal
// carrying an email claim is registered on first fetch.
func NewMemoryBackend(autoProvision bool) *MemoryBackend {
	return &MemoryBackend{
		identities:    make(map[string]models.Identity),
		revoked:       make(map[string]bool),
		autoProvision: autoProvision,
	}
}

func (b *MemoryBackend) Register(identity models.Identity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.identities[identity.ID] = identity
}

func (b *MemoryBackend) FailFetchesWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchErr = err
}

func (b *MemoryBackend) FailUpdatesWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateErr = err
}

func (b *MemoryBackend) FailRevokesWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revokeErr = err
}

func (b *MemoryBackend) FetchIdentity(ctx context.Context, principal models.Principal) (*models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fetchErr != nil {
		return nil, exceptions.ErrProviderFetchIdentity(b.fetchErr)
	}
	if b.revoked[principal.SessionHandle] {
		return nil, nil
	}

	identity, ok := b.identities[principal.UserID]
	if !ok {
		if !b.autoProvision || principal.Email == "" {
			return nil, nil
		}
		identity = models.Identity{
			ID:          principal.UserID,
			DisplayName: principal.DisplayName,
			Email:       principal.Email,
		}
		b.identities[identity.ID] = identity
	}
	return &identity, nil
}

func (b *MemoryBackend) UpdateMetadata(ctx context.Context, userID string, patch models.IdentityMetadata) (*models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrProviderRoleCommit(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.updateErr != nil {
		return nil, exceptions.ErrProviderRoleCommit(b.updateErr)
	}

	identity, ok := b.identities[userID]
	if !ok {
		return nil, exceptions.ErrProviderRoleCommit(nil)
	}
	if patch.Role != "" {
		identity.Metadata.Role = patch.Role
	}
	b.identities[userID] = identity
	return &identity, nil
}

func (b *MemoryBackend) RevokeSession(ctx context.Context, principal models.Principal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.revokeErr != nil {
		return exceptions.ErrProviderSignOut(b.revokeErr)
	}
	b.revoked[principal.SessionHandle] = true
	return nil
}
