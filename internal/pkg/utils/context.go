package utils

import (
	"context"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
)

// GetPrincipal returns the verified caller, or nil when the request carries no session.
func GetPrincipal(ctx context.Context) *models.Principal {
	principal, _ := ctx.Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
	return principal
}

func IsAPIKeyAuthenticated(ctx context.Context) bool {
	authenticated, _ := ctx.Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
	return authenticated
}
