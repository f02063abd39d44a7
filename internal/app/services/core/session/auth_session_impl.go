package session

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

type authSession struct {
	backend   contracts.IdentityBackend
	principal *models.Principal

	once  sync.Once
	ready chan struct{}

	mu       sync.RWMutex
	loaded   bool
	signedIn bool
	identity *models.Identity
	loadErr  error

	Log *zap.Logger
}

// NewAuthSession wraps the identity backend for one request. A nil principal is a
// request without a session and loads immediately as signed out.
func NewAuthSession(backend contracts.IdentityBackend, principal *models.Principal, logger *zap.Logger) contracts.AuthSession {
	s := &authSession{
		backend:   backend,
		principal: principal,
		ready:     make(chan struct{}),
		Log:       logger,
	}
	if principal == nil {
		s.loaded = true
		s.once.Do(func() { close(s.ready) })
	}
	return s
}

func (s *authSession) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *authSession) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// Identity returns a copy of the loaded identity, nil when signed out.
func (s *authSession) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// AwaitLoad blocks until the provider answered or ctx is done. A cancelled wait leaves
// the session not loaded.
func (s *authSession) AwaitLoad(ctx context.Context) error {
	s.once.Do(func() {
		go s.load(ctx)
	})

	select {
	case <-s.ready:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *authSession) load(ctx context.Context) {
	defer close(s.ready)

	requestID := utils.GetRequestID(ctx)
	identity, err := s.backend.FetchIdentity(ctx, *s.principal)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.Log.Error("authSession.load error fetching identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, s.principal.UserID),
			zap.Error(err),
		)
		s.loadErr = err
		return
	}

	s.loaded = true
	s.signedIn = identity != nil
	s.identity = identity
}

// SetRole writes role into the provider metadata. The local identity only changes after
// the provider confirmed the write.
func (s *authSession) SetRole(ctx context.Context, role models.Role) (*models.Identity, error) {
	requestID := utils.GetRequestID(ctx)

	current := s.Identity()
	if current == nil {
		return nil, exceptions.ErrNotSignedIn(nil)
	}

	updated, err := s.backend.UpdateMetadata(ctx, current.ID, models.IdentityMetadata{Role: role})
	if err != nil {
		s.Log.Error("authSession.SetRole error updating provider metadata",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, current.ID),
			zap.String(constvars.LoggingRoleKey, role.String()),
			zap.Error(err),
		)
		return nil, exceptions.ErrProviderRoleCommit(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if updated == nil {
		current.Metadata.Role = role
		updated = current
	}
	s.identity = updated

	identity := *updated
	return &identity, nil
}

func (s *authSession) SignOut(ctx context.Context) error {
	if s.principal == nil || !s.SignedIn() {
		return nil
	}

	if err := s.backend.RevokeSession(ctx, *s.principal); err != nil {
		s.Log.Error("authSession.SignOut error revoking session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingIdentityIDKey, s.principal.UserID),
			zap.Error(err),
		)
		return exceptions.ErrProviderSignOut(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedIn = false
	s.identity = nil
	return nil
}
