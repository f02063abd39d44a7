package views

import (
	"hms-portal-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRouter_Resolve(t *testing.T) {
	router, err := NewViewRouter()
	require.NoError(t, err)

	tests := []struct {
		name     string
		role     models.Role
		expected models.ViewDescriptor
	}{
		{
			name: "Patient",
			role: models.RolePatient,
			expected: models.ViewDescriptor{
				Root: "patient-dashboard", Page: "appointments", Recognized: true,
				Props: models.ViewProps{ReceivesAllUsers: true},
			},
		},
		{
			name: "Doctor",
			role: models.RoleDoctor,
			expected: models.ViewDescriptor{
				Root: "doctor-dashboard", Page: "appointments", Recognized: true,
			},
		},
		{
			name: "Admin",
			role: models.RoleAdmin,
			expected: models.ViewDescriptor{
				Root: "admin-dashboard", Page: "appointments", Recognized: true,
				Props: models.ViewProps{ReceivesAllUsers: true, CanReplaceDirectory: true},
			},
		},
		{
			name: "Unknown Role",
			role: "NURSE",
			expected: models.ViewDescriptor{
				Root: "role-not-recognized", Page: "appointments", Message: "Role not recognized.",
			},
		},
		{
			name: "Empty Role",
			role: "",
			expected: models.ViewDescriptor{
				Root: "role-not-recognized", Page: "appointments", Message: "Role not recognized.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, router.Resolve(tt.role, "appointments"))
		})
	}
}

func TestNewEnforcer(t *testing.T) {
	t.Run("Embedded Policy", func(t *testing.T) {
		enforcer, err := newEnforcer(rbacModelContent, rbacPolicyContent)
		require.NoError(t, err)

		allowed, err := enforcer.Enforce("ADMIN", "directory", "replace")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = enforcer.Enforce("DOCTOR", "directory", "list")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Comments And Blank Lines", func(t *testing.T) {
		enforcer, err := newEnforcer(rbacModelContent, "# doctors may list\n\np, DOCTOR, directory, list\n")
		require.NoError(t, err)

		props, err := viewProps(enforcer, models.RoleDoctor)
		require.NoError(t, err)
		assert.Equal(t, models.ViewProps{ReceivesAllUsers: true}, props)
	})

	t.Run("Malformed Policy Line", func(t *testing.T) {
		_, err := newEnforcer(rbacModelContent, "p, ADMIN, directory\n")
		assert.Error(t, err)
	})

	t.Run("Malformed Model", func(t *testing.T) {
		_, err := newEnforcer("[request_definition]\n", rbacPolicyContent)
		assert.Error(t, err)
	})
}
