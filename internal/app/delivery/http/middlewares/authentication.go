package middlewares

import (
	"context"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Authenticate resolves the session credential if one is present. Requests without a
// credential pass through without a principal; a credential that fails verification
// is rejected.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		principal, err := m.SessionVerifier.Verify(w, r)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate session verification failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}
		if principal == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PRINCIPAL_KEY, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
