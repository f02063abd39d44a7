package controllers

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func requestContext(r *http.Request, internalConfig *config.InternalConfig) (context.Context, context.CancelFunc) {
	timeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), timeout)
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
