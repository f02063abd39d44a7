package models

import "hms-portal-service/internal/pkg/constvars"

type User struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Role           Role     `json:"role" validate:"required"`
	Age            string   `json:"age,omitempty"`
	BloodGroup     string   `json:"bloodGroup,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	Address        string   `json:"address,omitempty"`
	Specialization string   `json:"specialization,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	clone := u
	if u.MedicalHistory != nil {
		clone.MedicalHistory = append([]string(nil), u.MedicalHistory...)
	}
	return clone
}

// UserPatch carries the subset of profile fields a merge replaces; nil means untouched.
type UserPatch struct {
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Age            *string   `json:"age,omitempty"`
	BloodGroup     *string   `json:"bloodGroup,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Gender         *string   `json:"gender,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	MedicalHistory *[]string `json:"medicalHistory,omitempty"`
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.BloodGroup == nil &&
		p.Phone == nil && p.Gender == nil && p.Address == nil &&
		p.Specialization == nil && p.MedicalHistory == nil
}

func (p UserPatch) ApplyTo(user *User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Age != nil {
		user.Age = *p.Age
	}
	if p.BloodGroup != nil {
		user.BloodGroup = *p.BloodGroup
	}
	if p.Phone != nil {
		user.Phone = *p.Phone
	}
	if p.Gender != nil {
		user.Gender = *p.Gender
	}
	if p.Address != nil {
		user.Address = *p.Address
	}
	if p.Specialization != nil {
		user.Specialization = *p.Specialization
	}
	if p.MedicalHistory != nil {
		user.MedicalHistory = append([]string(nil), (*p.MedicalHistory)...)
	}
}

// NewUserFromIdentity builds the directory entry created on first role resolution.
func NewUserFromIdentity(identity Identity, role Role) User {
	name := identity.DisplayName
	if name == "" {
		name = constvars.DefaultUserName
	}
	return User{
		ID:         identity.ID,
		Name:       name,
		Email:      identity.Email,
		Role:       role,
		Age:        constvars.DefaultUserAge,
		BloodGroup: constvars.DefaultUserBloodGroup,
	}
}
