package controllers

import (
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/dto/requests"
	"hms-portal-service/internal/pkg/dto/responses"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type UserController struct {
	Log            *zap.Logger
	PortalUsecase  contracts.PortalUsecase
	InternalConfig *config.InternalConfig
}

func NewUserController(logger *zap.Logger, portalUsecase contracts.PortalUsecase, internalConfig *config.InternalConfig) *UserController {
	return &UserController{
		Log:            logger,
		PortalUsecase:  portalUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdateProfile)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	request.Sanitize()

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	result, err := ctrl.PortalUsecase.UpdateProfile(ctx, utils.GetPrincipal(ctx), request.ToPatch())
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateProfileSuccessMessage, result)
}

func (ctrl *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	users, err := ctrl.PortalUsecase.ListUsers(ctx, utils.GetPrincipal(ctx))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListUsersSuccessMessage, responses.Users{
		Users: users,
		Total: len(users),
	})
}

func (ctrl *UserController) ReplaceDirectory(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ReplaceDirectory)
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

	users, err := ctrl.PortalUsecase.ReplaceDirectory(ctx, utils.GetPrincipal(ctx), request.Users)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReplaceDirectorySuccessMessage, responses.Users{
		Users: users,
		Total: len(users),
	})
}
