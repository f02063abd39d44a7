package middlewares

import (
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	SessionVerifier contracts.SessionVerifier
	ResourceLimiter *ratelimiter.ResourceLimiter
	InternalConfig  *config.InternalConfig
}

// NewMiddlewares builds the shared middleware set. resourceLimiter is nil unless a
// Redis store is configured.
func NewMiddlewares(
	logger *zap.Logger,
	sessionVerifier contracts.SessionVerifier,
	resourceLimiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:             logger,
		SessionVerifier: sessionVerifier,
		ResourceLimiter: resourceLimiter,
		InternalConfig:  internalConfig,
	}
}
