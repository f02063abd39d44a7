package responses

import "hms-portal-service/internal/app/models"

type Users struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
}

type Health struct {
	Status string `json:"status"`
}
