package views

import (
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
)

var defaultRoots = map[models.Role]string{
	models.RolePatient: constvars.ViewRootPatientDashboard,
	models.RoleDoctor:  constvars.ViewRootDoctorDashboard,
	models.RoleAdmin:   constvars.ViewRootAdminDashboard,
}

type viewRouter struct {
	routes map[models.Role]models.ViewDescriptor
}

// NewViewRouter resolves every root view's props once from the embedded RBAC policy.
func NewViewRouter() (contracts.ViewRouter, error) {
	enforcer, err := newEnforcer(rbacModelContent, rbacPolicyContent)
	if err != nil {
		return nil, err
	}

	routes := make(map[models.Role]models.ViewDescriptor, len(defaultRoots))
	for role, root := range defaultRoots {
		props, err := viewProps(enforcer, role)
		if err != nil {
			return nil, err
		}
		routes[role] = models.ViewDescriptor{Root: root, Recognized: true, Props: props}
	}

	return &viewRouter{routes: routes}, nil
}

// Resolve never fails: roles without a route get the not-recognized view.
func (r *viewRouter) Resolve(role models.Role, page string) models.ViewDescriptor {
	view, ok := r.routes[role]
	if !ok {
		return models.ViewDescriptor{
			Root:    constvars.ViewRootRoleNotRecognized,
			Page:    page,
			Message: constvars.ViewMessageRoleNotFound,
		}
	}
	view.Page = page
	return view
}
