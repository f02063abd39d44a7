package routers

import (
	"hms-portal-service/internal/app/delivery/http/controllers"
	"hms-portal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.Get("/", userController.ListUsers)
	router.Patch("/me", userController.UpdateProfile)
	router.With(middlewares.AdminAPIKey).Put("/", userController.ReplaceDirectory)
}
