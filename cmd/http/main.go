package main

import (
	"context"
	"fmt"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/delivery/http/controllers"
	"hms-portal-service/internal/app/delivery/http/middlewares"
	"hms-portal-service/internal/app/delivery/http/routers"
	"hms-portal-service/internal/app/drivers/database"
	"hms-portal-service/internal/app/drivers/logger"
	"hms-portal-service/internal/app/drivers/messaging"
	"hms-portal-service/internal/app/drivers/storage"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/app/services/core/directory"
	"hms-portal-service/internal/app/services/core/portal"
	"hms-portal-service/internal/app/services/core/preferences"
	"hms-portal-service/internal/app/services/core/views"
	"hms-portal-service/internal/app/services/shared/events"
	"hms-portal-service/internal/app/services/shared/identity"
	"hms-portal-service/internal/app/services/shared/locker"
	"hms-portal-service/internal/app/services/shared/ratelimiter"
	redisRepo "hms-portal-service/internal/app/services/shared/redis"
	snapshotStorage "hms-portal-service/internal/app/services/shared/storage"
	"hms-portal-service/internal/app/services/shared/store"
	"hms-portal-service/internal/pkg/constvars"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if err := internalConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	accessLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		AccessLogger:   accessLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	switch internalConfig.Store.Driver {
	case constvars.StoreDriverRedis:
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	case constvars.StoreDriverMongo:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	case constvars.StoreDriverPostgres:
		bootstrap.PostgresDB = database.NewPostgresDB(driverConfig)
		applied, err := database.RunPostgresMigrations(bootstrap.PostgresDB)
		if err != nil {
			log.Fatalf("Error executing migration: %v", err)
		}
		log.Printf("Applied %d migrations!\n", applied)
	}
	if internalConfig.Events.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if internalConfig.Snapshot.Enabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig.Snapshot.BucketName)
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Persisted store and locker
	var persistedStore contracts.PersistedStore
	var lockService contracts.LockerService
	var resourceLimiter *ratelimiter.ResourceLimiter
	switch internalConfig.Store.Driver {
	case constvars.StoreDriverRedis:
		redisRepository := redisRepo.NewRedisRepository(bootstrap.Redis)
		persistedStore = store.NewRedisStore(redisRepository, log)
		lockService = locker.NewLockService(redisRepository, log)
		resourceLimiter = ratelimiter.NewResourceLimiter(redisRepository, log)
	case constvars.StoreDriverMongo:
		mongoDatabase := bootstrap.MongoDB.Database(bootstrap.DriverConfig.MongoDB.DbName)
		persistedStore = store.NewMongoStore(mongoDatabase, internalConfig.Store.MongoCollection, log)
		lockService = locker.NewMemoryLocker()
	case constvars.StoreDriverPostgres:
		persistedStore = store.NewPostgresStore(bootstrap.PostgresDB, log)
		lockService = locker.NewMemoryLocker()
	case constvars.StoreDriverMemory:
		persistedStore = store.NewMemoryStore()
		lockService = locker.NewMemoryLocker()
	default:
		return fmt.Errorf("unknown store driver %q", internalConfig.Store.Driver)
	}
	persistedStore = store.WithNamespace(persistedStore, internalConfig.Store.Namespace)

	// Events
	eventPublisher := events.NewLogPublisher(log)
	if bootstrap.RabbitMQ != nil {
		publisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.Events.Queue, log)
		if err != nil {
			return err
		}
		eventPublisher = publisher
	}

	// Directory snapshots
	var snapshots contracts.SnapshotStorage
	if bootstrap.Minio != nil {
		snapshots = snapshotStorage.NewMinioSnapshotStorage(bootstrap.Minio, internalConfig.Snapshot.BucketName)
	}

	// Identity
	var identityBackend contracts.IdentityBackend
	var sessionVerifier contracts.SessionVerifier
	switch internalConfig.Identity.Provider {
	case constvars.IdentityProviderSupertokens:
		err := identity.InitializeSupertoken(bootstrap.DriverConfig, internalConfig, log)
		if err != nil {
			return err
		}
		identityBackend = identity.NewSupertokensBackend(internalConfig.Identity.TenantID, log)
		sessionVerifier = identity.NewSupertokensVerifier()
	case constvars.IdentityProviderLocal:
		identityBackend = identity.NewMemoryBackend(internalConfig.Identity.LocalAutoProvision)
		sessionVerifier = identity.NewJWTVerifier(internalConfig.Identity.LocalJWTSecret)
	default:
		return fmt.Errorf("unknown identity provider %q", internalConfig.Identity.Provider)
	}

	// Directory
	userDirectory, err := directory.NewDirectoryService(persistedStore, snapshots, eventPublisher, internalConfig.Directory.FixturePath, log)
	if err != nil {
		return err
	}
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = userDirectory.Seed(seedCtx)
	if err != nil {
		return err
	}

	// Preferences
	preferenceStore := preferences.NewPreferenceStore(persistedStore, log, func(ctx context.Context, preference models.ThemePreference) {
		log.Info("Theme applied", zap.String(constvars.LoggingThemeKey, preference.Theme))
	})

	// Views
	viewRouter, err := views.NewViewRouter()
	if err != nil {
		return err
	}

	// Portal
	portalUsecase := portal.NewPortalUsecase(
		identityBackend,
		userDirectory,
		lockService,
		eventPublisher,
		viewRouter,
		preferenceStore,
		internalConfig,
		log,
	)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, sessionVerifier, resourceLimiter, internalConfig)

	// Controllers
	sessionController := controllers.NewSessionController(log, portalUsecase, internalConfig)
	userController := controllers.NewUserController(log, portalUsecase, internalConfig)
	preferenceController := controllers.NewPreferenceController(log, portalUsecase, internalConfig)
	healthController := controllers.NewHealthController()

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		bootstrap.AccessLogger,
		middlewares,
		sessionController,
		userController,
		preferenceController,
		healthController,
	)
	return nil
}
