package requests

import (
	"hms-portal-service/internal/app/models"
	"strings"
)

type UpdateProfile struct {
	Name           *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Email          *string   `json:"email" validate:"omitempty,email"`
	Age            *string   `json:"age" validate:"omitempty,max=3"`
	BloodGroup     *string   `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone          *string   `json:"phone" validate:"omitempty,max=32"`
	Gender         *string   `json:"gender" validate:"omitempty,max=32"`
	Address        *string   `json:"address" validate:"omitempty,max=255"`
	Specialization *string   `json:"specialization" validate:"omitempty,max=120"`
	MedicalHistory *[]string `json:"medicalHistory"`
}

func (r *UpdateProfile) Sanitize() {
	for _, field := range []*string{r.Name, r.Email, r.Age, r.BloodGroup, r.Phone, r.Gender, r.Address, r.Specialization} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

func (r *UpdateProfile) ToPatch() models.UserPatch {
	return models.UserPatch{
		Name:           r.Name,
		Email:          r.Email,
		Age:            r.Age,
		BloodGroup:     r.BloodGroup,
		Phone:          r.Phone,
		Gender:         r.Gender,
		Address:        r.Address,
		Specialization: r.Specialization,
		MedicalHistory: r.MedicalHistory,
	}
}

type ReplaceDirectory struct {
	Users []models.User `json:"users" validate:"required,dive"`
}
