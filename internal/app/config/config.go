package config

import (
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

const defaultRoleAssignmentLockTTLSeconds = 30

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "hms_portal"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		PostgresDB: PostgresDB{
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "hms_portal"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Supertoken: Supertoken{
			ConnectionURI:   utils.GetEnvString("SUPERTOKEN_CONNECTION_URI", "http://localhost:3567"),
			APIKey:          utils.GetEnvString("SUPERTOKEN_API_KEY", ""),
			AppName:         utils.GetEnvString("SUPERTOKEN_APP_NAME", "hms-portal"),
			ApiDomain:       utils.GetEnvString("SUPERTOKEN_API_DOMAIN", "http://localhost:8080"),
			WebsiteDomain:   utils.GetEnvString("SUPERTOKEN_WEBSITE_DOMAIN", "http://localhost:3000"),
			ApiBasePath:     utils.GetEnvString("SUPERTOKEN_API_BASE_PATH", "/auth"),
			WebsiteBasePath: utils.GetEnvString("SUPERTOKEN_WEBSITE_BASE_PATH", "/auth"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	cfg := &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RoleSelectionRatePerMinute: utils.GetEnvInt("APP_ROLE_SELECTION_RATE_PER_MINUTE", 6),
			RoleSelectionBurst:         utils.GetEnvInt("APP_ROLE_SELECTION_BURST", 2),
			AdminAPIKeyHash:            utils.GetEnvString("APP_ADMIN_API_KEY_HASH", ""),
		},
		Store: AppStore{
			Driver:          utils.GetEnvString("STORE_DRIVER", constvars.StoreDriverMemory),
			Namespace:       utils.GetEnvString("STORE_NAMESPACE", "hms:"),
			MongoCollection: utils.GetEnvString("STORE_MONGO_COLLECTION", "kv"),
		},
		Identity: AppIdentity{
			Provider:                     utils.GetEnvString("IDENTITY_PROVIDER", constvars.IdentityProviderLocal),
			LocalJWTSecret:               utils.GetEnvString("IDENTITY_LOCAL_JWT_SECRET", ""),
			LocalJWTExpTimeInHour:        utils.GetEnvInt("IDENTITY_LOCAL_JWT_EXP_TIME_IN_HOUR", 12),
			LocalAutoProvision:           utils.GetEnvBool("IDENTITY_LOCAL_AUTO_PROVISION", true),
			TenantID:                     utils.GetEnvString("IDENTITY_TENANT_ID", "public"),
			RoleAssignmentLockTTLSeconds: utils.GetEnvInt("IDENTITY_ROLE_ASSIGNMENT_LOCK_TTL_SECONDS", defaultRoleAssignmentLockTTLSeconds),
		},
		Events: AppEvents{
			Enabled: utils.GetEnvBool("EVENTS_ENABLED", false),
			Queue:   utils.GetEnvString("EVENTS_QUEUE", "hms.portal.events"),
		},
		Snapshot: AppSnapshot{
			Enabled:    utils.GetEnvBool("SNAPSHOT_ENABLED", false),
			BucketName: utils.GetEnvString("SNAPSHOT_BUCKET_NAME", "hms-directory-snapshots"),
		},
		Directory: AppDirectory{
			FixturePath: utils.GetEnvString("DIRECTORY_FIXTURE_PATH", ""),
		},
	}

	// The role assignment lock must always expire.
	if cfg.Identity.RoleAssignmentLockTTLSeconds <= 0 {
		cfg.Identity.RoleAssignmentLockTTLSeconds = defaultRoleAssignmentLockTTLSeconds
	}
	return cfg
}
