package utils

import (
	"hms-portal-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("portal_role", validatePortalRole)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePortalRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).IsEnumerated()
}
