package middlewares

import (
	"context"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// AdminAPIKey marks the request as admin-authenticated when x-api-key matches the
// configured bcrypt hash. Requests without the header pass through untouched.
func (m *Middlewares) AdminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)

		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !utils.CheckAPIKeyHash(apiKey, m.InternalConfig.App.AdminAPIKeyHash) {
			utils.LogSecurityEvent(m.Log, "invalid_api_key", utils.GetRequestID(r.Context()), "high",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH_KEY, true)

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
