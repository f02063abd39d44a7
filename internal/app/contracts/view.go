package contracts

import "hms-portal-service/internal/app/models"

type ViewRouter interface {
	Resolve(role models.Role, page string) models.ViewDescriptor
}
