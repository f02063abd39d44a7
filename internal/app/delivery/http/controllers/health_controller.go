package controllers

import (
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/dto/responses"
	"hms-portal-service/internal/pkg/utils"
	"net/http"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (ctrl *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthySuccessMessage, responses.Health{Status: "ok"})
}
