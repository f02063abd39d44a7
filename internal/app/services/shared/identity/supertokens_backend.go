package identity

import (
	"context"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"

	"github.com/supertokens/supertokens-golang/recipe/passwordless"
	"github.com/supertokens/supertokens-golang/recipe/session"
	"github.com/supertokens/supertokens-golang/recipe/usermetadata"
	"github.com/supertokens/supertokens-golang/recipe/userroles"
	"go.uber.org/zap"
)

type supertokensBackend struct {
	tenantID string
	Log      *zap.Logger
}

// NewSupertokensBackend reads identities from the passwordless recipe and keeps the
// role in user metadata. supertokens.Init must have run first.
func NewSupertokensBackend(tenantID string, logger *zap.Logger) contracts.IdentityBackend {
	return &supertokensBackend{
		tenantID: tenantID,
		Log:      logger,
	}
}

func (b *supertokensBackend) FetchIdentity(ctx context.Context, principal models.Principal) (*models.Identity, error) {
	requestID := utils.GetRequestID(ctx)

	user, err := passwordless.GetUserByID(principal.UserID)
	if err != nil {
		b.Log.Error("supertokensBackend.FetchIdentity error calling passwordless.GetUserByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, principal.UserID),
			zap.Error(err),
		)
		return nil, exceptions.ErrProviderFetchIdentity(err)
	}
	if user == nil {
		return nil, nil
	}

	metadata, err := usermetadata.GetUserMetadata(user.ID)
	if err != nil {
		b.Log.Error("supertokensBackend.FetchIdentity error calling usermetadata.GetUserMetadata",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, principal.UserID),
			zap.Error(err),
		)
		return nil, exceptions.ErrProviderFetchIdentity(err)
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	identity := identityFromMetadata(user.ID, email, metadata)
	return &identity, nil
}

func (b *supertokensBackend) UpdateMetadata(ctx context.Context, userID string, patch models.IdentityMetadata) (*models.Identity, error) {
	requestID := utils.GetRequestID(ctx)

	update := map[string]interface{}{}
	if patch.Role != "" {
		update[constvars.IdentityMetadataRoleKey] = patch.Role.String()
	}

	metadata, err := usermetadata.UpdateUserMetadata(userID, update)
	if err != nil {
		b.Log.Error("supertokensBackend.UpdateMetadata error calling usermetadata.UpdateUserMetadata",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, userID),
			zap.Error(err),
		)
		return nil, exceptions.ErrProviderRoleCommit(err)
	}

	// The userroles mirror only feeds access token claims; metadata stays authoritative.
	if patch.Role != "" {
		_, err = userroles.AddRoleToUser(b.tenantID, userID, patch.Role.String(), nil)
		if err != nil {
			b.Log.Warn("supertokensBackend.UpdateMetadata error mirroring role with userroles.AddRoleToUser",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingIdentityIDKey, userID),
				zap.Error(err),
			)
		}
	}

	user, err := passwordless.GetUserByID(userID)
	if err != nil || user == nil {
		b.Log.Error("supertokensBackend.UpdateMetadata error reloading user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, userID),
			zap.Error(err),
		)
		return nil, exceptions.ErrProviderRoleCommit(err)
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	identity := identityFromMetadata(user.ID, email, metadata)
	return &identity, nil
}

func (b *supertokensBackend) RevokeSession(ctx context.Context, principal models.Principal) error {
	_, err := session.RevokeSession(principal.SessionHandle)
	if err != nil {
		b.Log.Error("supertokensBackend.RevokeSession error calling session.RevokeSession",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionHandleKey, principal.SessionHandle),
			zap.Error(err),
		)
		return exceptions.ErrProviderSignOut(err)
	}
	return nil
}

func identityFromMetadata(userID, email string, metadata map[string]interface{}) models.Identity {
	identity := models.Identity{
		ID:    userID,
		Email: email,
	}
	if fullName, ok := metadata[constvars.IdentityMetadataFullNameKey].(string); ok && fullName != "" {
		identity.DisplayName = fullName
	} else if firstName, ok := metadata[constvars.IdentityMetadataFirstNameKey].(string); ok {
		identity.DisplayName = firstName
	}
	if role, ok := metadata[constvars.IdentityMetadataRoleKey].(string); ok {
		identity.Metadata.Role = models.Role(role)
	}
	return identity
}
