package models

import "hms-portal-service/internal/pkg/constvars"

// Role is kept as an open string: identity metadata may carry values outside the
// enumerated set and those must still flow to view routing.
type Role string

const (
	RolePatient Role = constvars.RolePatient
	RoleDoctor  Role = constvars.RoleDoctor
	RoleAdmin   Role = constvars.RoleAdmin
)

var EnumeratedRoles = []Role{RolePatient, RoleDoctor, RoleAdmin}

func (r Role) IsEnumerated() bool {
	for _, role := range EnumeratedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// DefaultLandingPage is the page a session lands on when its role settles.
func (r Role) DefaultLandingPage() string {
	if r == RoleAdmin {
		return constvars.PageDashboard
	}
	return constvars.PageAppointments
}
