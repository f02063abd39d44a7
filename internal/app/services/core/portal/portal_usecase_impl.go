package portal

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/app/services/core/roles"
	"hms-portal-service/internal/app/services/core/session"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type portalUsecase struct {
	IdentityBackend contracts.IdentityBackend
	Directory       contracts.UserDirectory
	Locker          contracts.LockerService
	Events          contracts.EventPublisher
	Views           contracts.ViewRouter
	Preferences     contracts.PreferenceStore
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

func NewPortalUsecase(
	identityBackend contracts.IdentityBackend,
	directory contracts.UserDirectory,
	locker contracts.LockerService,
	events contracts.EventPublisher,
	views contracts.ViewRouter,
	preferences contracts.PreferenceStore,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PortalUsecase {
	return &portalUsecase{
		IdentityBackend: identityBackend,
		Directory:       directory,
		Locker:          locker,
		Events:          events,
		Views:           views,
		Preferences:     preferences,
		InternalConfig:  internalConfig,
		Log:             logger,
	}
}

// requestSession is the per-request pairing of the provider session and its workflow.
type requestSession struct {
	auth     contracts.AuthSession
	workflow contracts.RoleWorkflow
}

// begin loads the caller's identity and reconciles it. A load that runs past the request
// deadline is not an error: the returned session simply reports Loaded false.
func (uc *portalUsecase) begin(ctx context.Context, principal *models.Principal) (*requestSession, error) {
	auth := session.NewAuthSession(uc.IdentityBackend, principal, uc.Log)
	rs := &requestSession{
		auth:     auth,
		workflow: roles.NewRoleWorkflow(auth, uc.Directory, uc.Locker, uc.Events, uc.InternalConfig, uc.Log),
	}

	if err := auth.AwaitLoad(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			uc.Log.Warn("portalUsecase.begin identity still loading at deadline",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			)
			return rs, nil
		}
		return nil, err
	}

	if _, err := rs.workflow.Reconcile(ctx); err != nil {
		return nil, err
	}
	return rs, nil
}

// requireSignedIn is begin for operations that cannot answer with a loading screen.
func (uc *portalUsecase) requireSignedIn(ctx context.Context, principal *models.Principal) (*requestSession, error) {
	rs, err := uc.begin(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !rs.auth.Loaded() {
		return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
	}
	if !rs.auth.SignedIn() {
		return nil, exceptions.ErrNotSignedIn(nil)
	}
	return rs, nil
}

func (uc *portalUsecase) Screen(ctx context.Context, principal *models.Principal, page string) (*models.Screen, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("portalUsecase.Screen called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPageKey, page),
	)

	rs, err := uc.begin(ctx, principal)
	if err != nil {
		uc.Log.Error("portalUsecase.Screen error loading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if page != "" {
		rs.workflow.Navigate(page)
	}

	screen := uc.buildScreen(rs)
	uc.Log.Info("portalUsecase.Screen succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScreenKey, screen.Kind),
		zap.String(constvars.LoggingStateKey, string(screen.Session.State)),
	)
	return screen, nil
}

func (uc *portalUsecase) SelectRole(ctx context.Context, principal *models.Principal, role models.Role) (*models.Screen, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("portalUsecase.SelectRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, role.String()),
	)

	rs, err := uc.requireSignedIn(ctx, principal)
	if err != nil {
		return nil, err
	}

	if _, err := rs.workflow.SelectRole(ctx, role); err != nil {
		uc.Log.Error("portalUsecase.SelectRole error selecting role",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	screen := uc.buildScreen(rs)
	uc.Log.Info("portalUsecase.SelectRole succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScreenKey, screen.Kind),
	)
	return screen, nil
}

// SignOut is idempotent: a caller without a live session gets the signed-out screen.
func (uc *portalUsecase) SignOut(ctx context.Context, principal *models.Principal) (*models.Screen, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("portalUsecase.SignOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rs, err := uc.begin(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !rs.auth.Loaded() {
		return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
	}

	if _, err := rs.workflow.SignOut(ctx); err != nil {
		uc.Log.Error("portalUsecase.SignOut error signing out",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("portalUsecase.SignOut succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.buildScreen(rs), nil
}

func (uc *portalUsecase) UpdateProfile(ctx context.Context, principal *models.Principal, patch models.UserPatch) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("portalUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rs, err := uc.requireSignedIn(ctx, principal)
	if err != nil {
		return nil, err
	}

	snapshot := rs.workflow.Snapshot()
	if !snapshot.HasRole() {
		return nil, exceptions.ErrForbiddenRole(nil)
	}

	user, found, err := uc.Directory.Merge(ctx, snapshot.IdentityID, patch)
	if err != nil {
		uc.Log.Error("portalUsecase.UpdateProfile error merging profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, snapshot.IdentityID),
			zap.Error(err),
		)
		return nil, err
	}
	if !found {
		return nil, exceptions.ErrForbiddenRole(nil)
	}

	uc.Log.Info("portalUsecase.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityIDKey, snapshot.IdentityID),
	)
	return &user, nil
}

func (uc *portalUsecase) ListUsers(ctx context.Context, principal *models.Principal) ([]models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("portalUsecase.ListUsers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rs, err := uc.requireSignedIn(ctx, principal)
	if err != nil {
		return nil, err
	}

	snapshot := rs.workflow.Snapshot()
	view := uc.Views.Resolve(snapshot.Role, snapshot.ActivePage)
	if !snapshot.HasRole() || !view.Props.ReceivesAllUsers {
		return nil, exceptions.ErrForbiddenRole(nil)
	}
	return uc.Directory.List(), nil
}

// ReplaceDirectory is allowed for an ADMIN session or a request authenticated with the
// admin API key.
func (uc *portalUsecase) ReplaceDirectory(ctx context.Context, principal *models.Principal, users []models.User) ([]models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("portalUsecase.ReplaceDirectory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDirectorySizeKey, len(users)),
	)

	if !utils.IsAPIKeyAuthenticated(ctx) {
		rs, err := uc.requireSignedIn(ctx, principal)
		if err != nil {
			return nil, err
		}
		snapshot := rs.workflow.Snapshot()
		view := uc.Views.Resolve(snapshot.Role, snapshot.ActivePage)
		if !snapshot.HasRole() || !view.Props.CanReplaceDirectory {
			utils.LogSecurityEvent(uc.Log, "directory_replace_denied", requestID, "medium",
				zap.String(constvars.LoggingIdentityIDKey, snapshot.IdentityID),
				zap.String(constvars.LoggingRoleKey, snapshot.Role.String()),
			)
			return nil, exceptions.ErrForbiddenRole(nil)
		}
	}

	if err := uc.Directory.ReplaceAll(ctx, users); err != nil {
		uc.Log.Error("portalUsecase.ReplaceDirectory error replacing directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("portalUsecase.ReplaceDirectory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.Directory.List(), nil
}

func (uc *portalUsecase) Theme(ctx context.Context) (models.ThemePreference, error) {
	return uc.Preferences.Read(ctx)
}

func (uc *portalUsecase) ToggleTheme(ctx context.Context) (models.ThemePreference, error) {
	return uc.Preferences.Toggle(ctx)
}

func (uc *portalUsecase) buildScreen(rs *requestSession) *models.Screen {
	snapshot := rs.workflow.Snapshot()
	screen := &models.Screen{Session: snapshot}

	switch {
	case !snapshot.Loaded:
		screen.Kind = constvars.ScreenLoading
	case snapshot.State == models.SessionStateUnauthenticated:
		screen.Kind = constvars.ScreenSignedOut
	case snapshot.State == models.SessionStateAuthenticatedNoRole:
		screen.Kind = constvars.ScreenRoleSelection
	default:
		screen.Kind = constvars.ScreenDashboard
		view := uc.Views.Resolve(snapshot.Role, snapshot.ActivePage)
		screen.View = &view

		user, found := uc.Directory.Get(snapshot.IdentityID)
		if !found {
			if identity := rs.auth.Identity(); identity != nil {
				user = models.NewUserFromIdentity(*identity, snapshot.Role)
			}
		}
		screen.User = &user

		if view.Props.ReceivesAllUsers {
			screen.AllUsers = uc.Directory.List()
		}
	}
	return screen
}
