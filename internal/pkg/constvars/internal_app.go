package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "HMS_SVC_"
)

const (
	ResourceSession     = "session"
	ResourceUsers       = "users"
	ResourcePreferences = "preferences"
)

const (
	AppEnvLocal       = "local"
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

const (
	IdentityProviderLocal       = "local"
	IdentityProviderSupertokens = "supertokens"
)

const (
	CookieSameSiteStrictMode = "strict"
	CookieSameSiteNoneMode   = "none"
)
