package middlewares

import (
	"hms-portal-service/internal/app/services/shared/ratelimiter"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const roleSelectionLimiterGroup = "role-selection"

// RoleSelectionQuota enforces the per-minute role selection quota through the shared
// Redis counter. A Redis failure lets the request through.
func (m *Middlewares) RoleSelectionQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		out, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      callerKey(r),
			LimiterGroupName:  roleSelectionLimiterGroup,
			WindowDurationSec: 60,
			MaxQuota:          m.InternalConfig.App.RoleSelectionRatePerMinute,
		})
		if err != nil {
			m.Log.Warn("Middlewares.RoleSelectionQuota limiter unavailable, allowing request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		if !out.Allowed {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(out.RetryAfterSecs))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}
