package routers

import (
	"fmt"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/delivery/http/controllers"
	"hms-portal-service/internal/app/delivery/http/middlewares"
	"hms-portal-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
	"github.com/supertokens/supertokens-golang/supertokens"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	accessLogger *logrus.Logger,
	middlewares *middlewares.Middlewares,
	sessionController *controllers.SessionController,
	userController *controllers.UserController,
	preferenceController *controllers.PreferenceController,
	healthController *controllers.HealthController,
) {
	allowedHeaders := []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", constvars.HeaderXRequestID, constvars.HeaderAPIKey}
	if internalConfig.Identity.Provider == constvars.IdentityProviderSupertokens {
		allowedHeaders = append(allowedHeaders, supertokens.GetAllCORSHeaders()...)
	}

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   []string{"Link", constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	if accessLogger != nil {
		router.Use(middlewares.RequestLogger(internalConfig.App, accessLogger))
	}
	router.Use(middlewares.ErrorHandler)

	if internalConfig.Identity.Provider == constvars.IdentityProviderSupertokens {
		router.Use(supertokens.Middleware)
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/healthz", healthController.Healthz)

			r.Group(func(r chi.Router) {
				r.Use(middlewares.Authenticate)

				r.Route("/session", func(r chi.Router) {
					attachSessionRoutes(r, internalConfig, middlewares, sessionController)
				})

				r.Route("/users", func(r chi.Router) {
					attachUserRoutes(r, middlewares, userController)
				})

				r.Route("/preferences", func(r chi.Router) {
					attachPreferenceRoutes(r, preferenceController)
				})
			})
		})
	})
}
