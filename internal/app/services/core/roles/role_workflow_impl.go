package roles

import (
	"context"
	"fmt"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type roleWorkflow struct {
	mu        sync.Mutex
	state     models.Session
	session   contracts.AuthSession
	directory contracts.UserDirectory
	locker    contracts.LockerService
	events    contracts.EventPublisher
	lockTTL   time.Duration
	Log       *zap.Logger
}

// NewRoleWorkflow reconciles one request's AuthSession with the shared directory.
// events may be nil.
func NewRoleWorkflow(
	session contracts.AuthSession,
	directory contracts.UserDirectory,
	locker contracts.LockerService,
	events contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RoleWorkflow {
	return &roleWorkflow{
		state:     models.Session{State: stateUnauthenticated},
		session:   session,
		directory: directory,
		locker:    locker,
		events:    events,
		lockTTL:   time.Duration(internalConfig.Identity.RoleAssignmentLockTTLSeconds) * time.Second,
		Log:       logger,
	}
}

func (w *roleWorkflow) Snapshot() models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *roleWorkflow) snapshotLocked() models.Session {
	snapshot := w.state
	snapshot.Loaded = w.session.Loaded()
	snapshot.SignedIn = w.session.SignedIn()
	return snapshot
}

// Reconcile re-derives the state from the identity metadata. It does nothing until the
// session has loaded.
func (w *roleWorkflow) Reconcile(ctx context.Context) (models.Session, error) {
	requestID := utils.GetRequestID(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.session.Loaded() {
		return w.snapshotLocked(), nil
	}

	if !w.session.SignedIn() {
		if err := w.fireLocked(ctx, eventNotSignedIn); err != nil {
			return w.snapshotLocked(), err
		}
		w.state.IdentityID = ""
		w.state.Role = ""
		w.state.ActivePage = ""
		return w.snapshotLocked(), nil
	}

	identity := w.session.Identity()
	w.state.IdentityID = identity.ID
	role := identity.Metadata.Role

	if role == "" {
		if err := w.fireLocked(ctx, eventIdentityWithoutRole); err != nil {
			return w.snapshotLocked(), err
		}
		w.state.Role = ""
		w.state.ActivePage = ""
		return w.snapshotLocked(), nil
	}

	_, created, err := w.directory.Upsert(ctx, identity.ID, func() models.User {
		return models.NewUserFromIdentity(*identity, role)
	})
	if err != nil {
		w.Log.Error("roleWorkflow.Reconcile error upserting directory entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, identity.ID),
			zap.Error(err),
		)
		return w.snapshotLocked(), err
	}

	w.settleLocked(ctx, eventIdentityWithRole, role)
	if created {
		w.Log.Info("roleWorkflow.Reconcile created directory entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, identity.ID),
			zap.String(constvars.LoggingRoleKey, role.String()),
		)
	}
	return w.snapshotLocked(), nil
}

// SelectRole commits role to the provider first and only then settles locally. A
// provider rejection leaves the session in AUTHENTICATED_NO_ROLE without an error.
func (w *roleWorkflow) SelectRole(ctx context.Context, role models.Role) (models.Session, error) {
	requestID := utils.GetRequestID(ctx)

	if !role.IsEnumerated() {
		return w.Snapshot(), exceptions.ErrInvalidRole(nil)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.State != stateNoRole {
		return w.snapshotLocked(), exceptions.ErrInvalidSessionTransition(nil, string(w.state.State), string(eventRoleCommitted))
	}
	identityID := w.state.IdentityID

	lockKey := fmt.Sprintf(constvars.LockKeyRoleAssignmentFormat, identityID)
	acquired, lockValue, err := w.locker.TryLock(ctx, lockKey, w.lockTTL)
	if err != nil {
		w.Log.Error("roleWorkflow.SelectRole error acquiring lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLockKey, lockKey),
			zap.Error(err),
		)
		return w.snapshotLocked(), err
	}
	if !acquired {
		w.Log.Warn("roleWorkflow.SelectRole role assignment already in flight",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, identityID),
		)
		return w.snapshotLocked(), exceptions.ErrRoleAssignmentInFlight(nil)
	}
	defer func() {
		if err := w.locker.Unlock(ctx, lockKey, lockValue); err != nil {
			w.Log.Warn("roleWorkflow.SelectRole error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingLockKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	identity, err := w.session.SetRole(ctx, role)
	if err != nil {
		w.Log.Error("roleWorkflow.SelectRole provider rejected role",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, identityID),
			zap.String(constvars.LoggingRoleKey, role.String()),
			zap.Error(err),
		)
		_ = w.fireLocked(ctx, eventRoleCommitFailed)
		return w.snapshotLocked(), nil
	}

	_, _, err = w.directory.Upsert(ctx, identity.ID, func() models.User {
		return models.NewUserFromIdentity(*identity, role)
	})
	if err != nil {
		w.Log.Error("roleWorkflow.SelectRole error upserting directory entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, identityID),
			zap.Error(err),
		)
		return w.snapshotLocked(), err
	}

	w.settleLocked(ctx, eventRoleCommitted, role)
	w.publish(ctx, models.Event{Type: constvars.EventRoleAssigned, IdentityID: identityID, Role: role})

	w.Log.Info("roleWorkflow.SelectRole succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityIDKey, identityID),
		zap.String(constvars.LoggingRoleKey, role.String()),
	)
	return w.snapshotLocked(), nil
}

// SignOut ends the provider session. The directory is never touched.
func (w *roleWorkflow) SignOut(ctx context.Context) (models.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	identityID := w.state.IdentityID
	if err := w.session.SignOut(ctx); err != nil {
		return w.snapshotLocked(), err
	}

	if err := w.fireLocked(ctx, eventSignedOut); err != nil {
		return w.snapshotLocked(), err
	}
	w.state.IdentityID = ""
	w.state.Role = ""
	w.state.ActivePage = ""

	if identityID != "" {
		w.publish(ctx, models.Event{Type: constvars.EventSignedOut, IdentityID: identityID})
	}
	return w.snapshotLocked(), nil
}

func (w *roleWorkflow) Navigate(page string) models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.State == stateWithRole && page != "" {
		w.state.ActivePage = page
	}
	return w.snapshotLocked()
}

// settleLocked moves into AUTHENTICATED_WITH_ROLE. The landing page is only chosen the
// first time the role settles.
func (w *roleWorkflow) settleLocked(ctx context.Context, event sessionEvent, role models.Role) {
	firstSettle := w.state.State != stateWithRole
	_ = w.fireLocked(ctx, event)
	w.state.Role = role
	if firstSettle || w.state.ActivePage == "" {
		w.state.ActivePage = role.DefaultLandingPage()
	}
}

func (w *roleWorkflow) fireLocked(ctx context.Context, event sessionEvent) error {
	from := w.state.State
	to, ok := nextState(from, event)
	if !ok {
		return exceptions.ErrInvalidSessionTransition(nil, string(from), string(event))
	}
	w.state.State = to

	if from != to {
		w.Log.Debug("roleWorkflow transition",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingFromStateKey, string(from)),
			zap.String(constvars.LoggingToStateKey, string(to)),
			zap.String(constvars.LoggingTransitionEventKey, string(event)),
		)
	}
	return nil
}

func (w *roleWorkflow) publish(ctx context.Context, event models.Event) {
	if w.events == nil {
		return
	}
	event.RequestID = utils.GetRequestID(ctx)
	event.OccurredAt = time.Now().UTC()
	if err := w.events.Publish(ctx, event); err != nil {
		w.Log.Warn("roleWorkflow.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
	}
}
