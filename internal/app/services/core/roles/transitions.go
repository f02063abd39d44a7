package roles

import "hms-portal-service/internal/app/models"

type sessionEvent string

const (
	eventNotSignedIn         sessionEvent = "not_signed_in"
	eventIdentityWithoutRole sessionEvent = "identity_without_role"
	eventIdentityWithRole    sessionEvent = "identity_with_role"
	eventRoleCommitted       sessionEvent = "role_committed"
	eventRoleCommitFailed    sessionEvent = "role_commit_failed"
	eventSignedOut           sessionEvent = "signed_out"
)

type transitionKey struct {
	from  models.SessionState
	event sessionEvent
}

const (
	stateUnauthenticated = models.SessionStateUnauthenticated
	stateNoRole          = models.SessionStateAuthenticatedNoRole
	stateWithRole        = models.SessionStateAuthenticatedWithRole
)

// transitions is the complete session state machine. A pair missing from the table is
// an invalid transition.
var transitions = map[transitionKey]models.SessionState{
	{stateUnauthenticated, eventNotSignedIn}:         stateUnauthenticated,
	{stateUnauthenticated, eventIdentityWithoutRole}: stateNoRole,
	{stateUnauthenticated, eventIdentityWithRole}:    stateWithRole,
	{stateUnauthenticated, eventSignedOut}:           stateUnauthenticated,

	{stateNoRole, eventNotSignedIn}:         stateUnauthenticated,
	{stateNoRole, eventIdentityWithoutRole}: stateNoRole,
	{stateNoRole, eventIdentityWithRole}:    stateWithRole,
	{stateNoRole, eventRoleCommitted}:       stateWithRole,
	{stateNoRole, eventRoleCommitFailed}:    stateNoRole,
	{stateNoRole, eventSignedOut}:           stateUnauthenticated,

	{stateWithRole, eventNotSignedIn}:         stateUnauthenticated,
	{stateWithRole, eventIdentityWithoutRole}: stateNoRole,
	{stateWithRole, eventIdentityWithRole}:    stateWithRole,
	{stateWithRole, eventSignedOut}:           stateUnauthenticated,
}

func nextState(from models.SessionState, event sessionEvent) (models.SessionState, bool) {
	to, ok := transitions[transitionKey{from: from, event: event}]
	return to, ok
}
