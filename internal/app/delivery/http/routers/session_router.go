package routers

import (
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/delivery/http/controllers"
	"hms-portal-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, internalConfig *config.InternalConfig, mw *middlewares.Middlewares, sessionController *controllers.SessionController) {
	router.Get("/", sessionController.GetSession)
	router.Post("/logout", sessionController.SignOut)

	ratePerMinute := internalConfig.App.RoleSelectionRatePerMinute
	if ratePerMinute <= 0 {
		router.Post("/role", sessionController.SelectRole)
		return
	}

	if mw.ResourceLimiter != nil {
		router.With(mw.RoleSelectionQuota).Post("/role", sessionController.SelectRole)
		return
	}

	burst := internalConfig.App.RoleSelectionBurst
	if burst <= 0 {
		burst = 1
	}
	limiter := middlewares.NewRateLimiter(burst, time.Minute/time.Duration(ratePerMinute), time.Minute)
	router.With(limiter.Limit(mw)).Post("/role", sessionController.SelectRole)
}
