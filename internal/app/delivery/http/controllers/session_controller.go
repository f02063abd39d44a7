package controllers

import (
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/dto/requests"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SessionController struct {
	Log            *zap.Logger
	PortalUsecase  contracts.PortalUsecase
	InternalConfig *config.InternalConfig
}

func NewSessionController(logger *zap.Logger, portalUsecase contracts.PortalUsecase, internalConfig *config.InternalConfig) *SessionController {
	return &SessionController{
		Log:            logger,
		PortalUsecase:  portalUsecase,
		InternalConfig: internalConfig,
	}
}

// GetSession answers with the screen the caller should see.
func (ctrl *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	page := r.URL.Query().Get("page")
	result, err := ctrl.PortalUsecase.Screen(ctx, utils.GetPrincipal(ctx), page)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSessionSuccessMessage, result)
}

func (ctrl *SessionController) SelectRole(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SelectRole)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	result, err := ctrl.PortalUsecase.SelectRole(ctx, utils.GetPrincipal(ctx), models.Role(request.Role))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectRoleSuccessMessage, result)
}

func (ctrl *SessionController) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	result, err := ctrl.PortalUsecase.SignOut(ctx, utils.GetPrincipal(ctx))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignOutSuccessMessage, result)
}
