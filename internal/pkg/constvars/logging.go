package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperationKey          = "operation"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingIdentityIDKey         = "identity_id"
	LoggingSessionHandleKey      = "session_handle"
	LoggingRoleKey               = "role"
	LoggingPageKey               = "page"
	LoggingStateKey              = "state"
	LoggingFromStateKey          = "from_state"
	LoggingToStateKey            = "to_state"
	LoggingTransitionEventKey    = "transition_event"
	LoggingStoreKey              = "store_key"
	LoggingDirectorySizeKey      = "directory_size"
	LoggingCreatedKey            = "created"
	LoggingThemeKey              = "theme"
	LoggingRedisKey              = "redis_key"
	LoggingLockKey               = "lock_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingEventTypeKey          = "event_type"
	LoggingQueueKey              = "queue"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingScreenKey             = "screen"
	LoggingViewRootKey           = "view_root"
)
