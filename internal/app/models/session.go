package models

type SessionState string

const (
	SessionStateUnauthenticated       SessionState = "UNAUTHENTICATED"
	SessionStateAuthenticatedNoRole   SessionState = "AUTHENTICATED_NO_ROLE"
	SessionStateAuthenticatedWithRole SessionState = "AUTHENTICATED_WITH_ROLE"
)

// Session is derived per request and never persisted. Role is only set in
// SessionStateAuthenticatedWithRole.
type Session struct {
	IdentityID string       `json:"identityId,omitempty"`
	Loaded     bool         `json:"loaded"`
	SignedIn   bool         `json:"signedIn"`
	State      SessionState `json:"state"`
	Role       Role         `json:"role,omitempty"`
	ActivePage string       `json:"activePage,omitempty"`
}

func (s Session) HasRole() bool {
	return s.State == SessionStateAuthenticatedWithRole && s.Role != ""
}
