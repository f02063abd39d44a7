package events

import (
	"context"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type logPublisher struct {
	Log *zap.Logger
}

// NewLogPublisher records events in the application log when no broker is configured.
func NewLogPublisher(logger *zap.Logger) contracts.EventPublisher {
	return &logPublisher{Log: logger}
}

func (p *logPublisher) Publish(ctx context.Context, event models.Event) error {
	utils.LogBusinessEvent(p.Log, event.Type, utils.GetRequestID(ctx),
		zap.String(constvars.LoggingIdentityIDKey, event.IdentityID),
		zap.String(constvars.LoggingRoleKey, event.Role.String()),
		zap.Int(constvars.LoggingDirectorySizeKey, event.Count),
	)
	return nil
}
