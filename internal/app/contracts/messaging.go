package contracts

import (
	"context"
	"hms-portal-service/internal/app/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}
