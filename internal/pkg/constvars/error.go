package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"email":       "must be a valid email",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"oneof":       "must be one of: %s",
	"portal_role": "must be one of: PATIENT, DOCTOR, ADMIN",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidRole                   = "the selected role is not available"
	ErrClientRoleAlreadyChosen             = "a role has already been chosen for this account"
	ErrClientRoleAssignmentInFlight        = "your role selection is still being processed"
	ErrClientIdentityProviderUnavailable   = "the sign-in service is unavailable, please try again"
	ErrClientDuplicateUserID               = "user ids must be unique"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientInvalidAPIKey                 = "invalid API key"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevValidationFailed          = "validation failed"
	ErrDevServerDeadlineExceeded    = "deadline exceeded"
	ErrDevMissingRequestID          = "request id missing from context"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevNotSignedIn               = "identity is not signed in"
	ErrDevInvalidRole               = "role is not one of the enumerated roles"
	ErrDevInvalidSessionTransition  = "transition not allowed from current session state"
	ErrDevRoleAssignmentInFlight    = "another role assignment is in flight for this identity"
	ErrDevForbiddenRole             = "session role is not allowed to use this operation"
	ErrDevDuplicateUserID           = "duplicate user id in directory payload"
	ErrDevMalformedPersistedData    = "persisted payload could not be parsed"
	ErrDevInvalidAPIKey             = "invalid API key"

	// Identity provider messages
	ErrDevProviderFetchIdentity = "failed to fetch identity from identity provider"
	ErrDevProviderRoleCommit    = "identity provider rejected role metadata update"
	ErrDevProviderSignOut       = "identity provider failed to revoke session"
	ErrDevSupertokenInit        = "failed to initialize supertokens"

	// Store messages
	ErrDevStoreGet          = "failed to read value from persisted store"
	ErrDevStoreSet          = "failed to write value to persisted store"
	ErrDevRedisGetNoData    = "failed to get data from redis with key %s"
	ErrDevRedisSet          = "failed to set data into redis"
	ErrDevRedisDelete       = "failed to delete data from redis"
	ErrDevRedisUnlock       = "failed to release redis lock"
	ErrDevMongoFindDocument = "failed when do find document on mongo collection %s"
	ErrDevMongoUpsert       = "failed to upsert document into mongo collection %s"
	ErrDevPostgresQuery     = "failed to query postgres table %s"
	ErrDevPostgresUpsert    = "failed to upsert row into postgres table %s"

	// Messaging and storage messages
	ErrDevRabbitMQPublish   = "failed to publish message to rabbitmq queue %s"
	ErrDevRabbitMQChannel   = "failed to open rabbitmq channel"
	ErrDevMinioCreateObject = "failed to create object on minio bucket %s"

	// Server messages
	ErrDevServerInternalError = "internal server error"
	ErrDevUnknownPanic        = "unknown panic"
)
