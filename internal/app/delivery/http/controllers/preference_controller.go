package controllers

import (
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type PreferenceController struct {
	Log            *zap.Logger
	PortalUsecase  contracts.PortalUsecase
	InternalConfig *config.InternalConfig
}

func NewPreferenceController(logger *zap.Logger, portalUsecase contracts.PortalUsecase, internalConfig *config.InternalConfig) *PreferenceController {
	return &PreferenceController{
		Log:            logger,
		PortalUsecase:  portalUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PreferenceController) GetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	result, err := ctrl.PortalUsecase.Theme(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetThemeSuccessMessage, result)
}

func (ctrl *PreferenceController) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	result, err := ctrl.PortalUsecase.ToggleTheme(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ToggleThemeSuccessMessage, result)
}
