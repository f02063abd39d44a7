package config

import (
	"errors"
	"hms-portal-service/internal/pkg/constvars"
)

type InternalConfig struct {
	App       App
	Store     AppStore
	Identity  AppIdentity
	Events    AppEvents
	Snapshot  AppSnapshot
	Directory AppDirectory
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RoleSelectionRatePerMinute int
	RoleSelectionBurst         int
	AdminAPIKeyHash            string
}

// AppStore selects the PersistedStore backend. Namespace prefixes every key.
type AppStore struct {
	Driver          string
	Namespace       string
	MongoCollection string
}

type AppIdentity struct {
	Provider                     string
	LocalJWTSecret               string
	LocalJWTExpTimeInHour        int
	LocalAutoProvision           bool
	TenantID                     string
	RoleAssignmentLockTTLSeconds int
}

type AppEvents struct {
	Enabled bool
	Queue   string
}

type AppSnapshot struct {
	Enabled    bool
	BucketName string
}

type AppDirectory struct {
	FixturePath string
}

// Validate rejects settings the service cannot safely start with.
func (c *InternalConfig) Validate() error {
	if c.Identity.Provider == constvars.IdentityProviderLocal && c.Identity.LocalJWTSecret == "" {
		return errors.New("IDENTITY_LOCAL_JWT_SECRET is required when IDENTITY_PROVIDER is local")
	}
	return nil
}
