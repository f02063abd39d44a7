package directory

import (
	"context"
	_ "embed"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

//go:embed fixtures/default_users.json
var defaultUsersFixture []byte

type directoryService struct {
	mu        sync.RWMutex
	users     []models.User
	index     map[string]int
	store     contracts.PersistedStore
	snapshots contracts.SnapshotStorage
	events    contracts.EventPublisher
	fixture   []byte
	Log       *zap.Logger
}

// NewDirectoryService builds an empty directory; call Seed before serving. snapshots may
// be nil, in which case ReplaceAll does not archive. A non-empty fixturePath overrides the
// embedded demo users.
func NewDirectoryService(
	store contracts.PersistedStore,
	snapshots contracts.SnapshotStorage,
	events contracts.EventPublisher,
	fixturePath string,
	logger *zap.Logger,
) (contracts.UserDirectory, error) {
	fixture := defaultUsersFixture
	if fixturePath != "" {
		content, err := os.ReadFile(fixturePath)
		if err != nil {
			return nil, exceptions.ErrServerProcess(err)
		}
		fixture = content
	}
	if _, err := decodeUsers(fixture); err != nil {
		return nil, exceptions.ErrMalformedPersistedData(err, fixturePath)
	}

	return &directoryService{
		index:     make(map[string]int),
		store:     store,
		snapshots: snapshots,
		events:    events,
		fixture:   fixture,
		Log:       logger,
	}, nil
}

func (s *directoryService) Seed(ctx context.Context) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("directoryService.Seed called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	raw, found, err := s.store.Get(ctx, constvars.StoreKeyDirectory)
	if err != nil {
		s.Log.Error("directoryService.Seed error reading store",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	var users []models.User
	persist := !found
	if found {
		users, err = decodeUsers([]byte(raw))
		if err != nil {
			s.Log.Warn("directoryService.Seed stored directory is malformed, falling back to default fixture",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(exceptions.ErrMalformedPersistedData(err, constvars.StoreKeyDirectory)),
			)
			persist = true
		}
	}
	if persist {
		users, _ = decodeUsers(s.fixture)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceLocked(users)
	if persist {
		if err := s.persistLocked(ctx); err != nil {
			s.Log.Error("directoryService.Seed error persisting default fixture",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}
	}

	s.Log.Info("directoryService.Seed succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDirectorySizeKey, len(s.users)),
	)
	return nil
}

func (s *directoryService) Get(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.User{}, false
	}
	return s.users[i].Clone(), true
}

func (s *directoryService) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.Clone())
	}
	return users
}

// Upsert returns the existing entry for id untouched; otherwise the factory result is
// appended and persisted.
func (s *directoryService) Upsert(ctx context.Context, id string, factory func() models.User) (models.User, bool, error) {
	requestID := utils.GetRequestID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[id]; ok {
		return s.users[i].Clone(), false, nil
	}

	user := factory()
	user.ID = id
	s.users = append(s.users, user.Clone())
	s.index[id] = len(s.users) - 1

	if err := s.persistLocked(ctx); err != nil {
		s.users = s.users[:len(s.users)-1]
		delete(s.index, id)
		s.Log.Error("directoryService.Upsert error persisting directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, id),
			zap.Error(err),
		)
		return models.User{}, false, err
	}

	s.Log.Info("directoryService.Upsert created user",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityIDKey, id),
		zap.String(constvars.LoggingRoleKey, user.Role.String()),
	)
	s.publish(ctx, models.Event{Type: constvars.EventDirectoryUserCreate, IdentityID: id, Role: user.Role})
	return user.Clone(), true, nil
}

// Merge applies patch to the entry for id. An unknown id is a no-op and reports false.
func (s *directoryService) Merge(ctx context.Context, id string, patch models.UserPatch) (models.User, bool, error) {
	requestID := utils.GetRequestID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.User{}, false, nil
	}

	previous := s.users[i]
	updated := previous.Clone()
	patch.ApplyTo(&updated)
	s.users[i] = updated

	if err := s.persistLocked(ctx); err != nil {
		s.users[i] = previous
		s.Log.Error("directoryService.Merge error persisting directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityIDKey, id),
			zap.Error(err),
		)
		return models.User{}, true, err
	}

	s.publish(ctx, models.Event{Type: constvars.EventDirectoryUserUpdate, IdentityID: id, Role: updated.Role})
	return updated.Clone(), true, nil
}

func (s *directoryService) ReplaceAll(ctx context.Context, users []models.User) error {
	requestID := utils.GetRequestID(ctx)

	seen := make(map[string]struct{}, len(users))
	for _, user := range users {
		if _, dup := seen[user.ID]; dup {
			return exceptions.ErrDuplicateUserID(nil, user.ID)
		}
		seen[user.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshots != nil {
		payload, err := json.Marshal(s.users)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		objectName := utils.GenerateFileName(constvars.SnapshotObjectPrefix, requestID, constvars.SnapshotObjectExtension)
		if _, err := s.snapshots.Archive(ctx, objectName, payload); err != nil {
			s.Log.Error("directoryService.ReplaceAll error archiving previous directory",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}
	}

	previous := s.users
	s.replaceLocked(users)

	if err := s.persistLocked(ctx); err != nil {
		s.replaceLocked(previous)
		s.Log.Error("directoryService.ReplaceAll error persisting directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("directoryService.ReplaceAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDirectorySizeKey, len(s.users)),
	)
	s.publish(ctx, models.Event{Type: constvars.EventDirectoryReplaced, Count: len(s.users)})
	return nil
}

func (s *directoryService) replaceLocked(users []models.User) {
	s.users = make([]models.User, 0, len(users))
	s.index = make(map[string]int, len(users))
	for _, user := range users {
		if _, dup := s.index[user.ID]; dup {
			continue
		}
		s.index[user.ID] = len(s.users)
		s.users = append(s.users, user.Clone())
	}
}

func (s *directoryService) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.users)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.store.Set(ctx, constvars.StoreKeyDirectory, string(payload))
}

func (s *directoryService) publish(ctx context.Context, event models.Event) {
	if s.events == nil {
		return
	}
	event.RequestID = utils.GetRequestID(ctx)
	event.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		s.Log.Warn("directoryService.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
	}
}

func decodeUsers(raw []byte) ([]models.User, error) {
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
