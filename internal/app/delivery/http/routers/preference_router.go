package routers

import (
	"hms-portal-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPreferenceRoutes(router chi.Router, preferenceController *controllers.PreferenceController) {
	router.Get("/theme", preferenceController.GetTheme)
	router.Post("/theme/toggle", preferenceController.ToggleTheme)
}
