package requests

type SelectRole struct {
	Role string `json:"role" validate:"required,portal_role"`
}
