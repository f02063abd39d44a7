package models

// Identity is the externally-issued principal as the identity provider describes it.
type Identity struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"displayName"`
	Email       string           `json:"email"`
	Metadata    IdentityMetadata `json:"metadata"`
}

// IdentityMetadata is the provider-side slot the role is written into.
type IdentityMetadata struct {
	Role Role `json:"role,omitempty"`
}

// Principal is what a verified session credential tells us about the caller.
type Principal struct {
	UserID        string
	SessionHandle string
	Email         string
	DisplayName   string
}
