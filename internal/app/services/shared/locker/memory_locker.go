package locker

import (
	"context"
	"hms-portal-service/internal/app/contracts"
	"sync"
	"time"

	"github.com/google/uuid"
)

type heldLock struct {
	value     string
	expiresAt time.Time
}

type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]heldLock
	now   func() time.Time
}

// NewMemoryLocker guards keys within a single process.
func NewMemoryLocker() contracts.LockerService {
	return &memoryLocker{
		locks: make(map[string]heldLock),
		now:   time.Now,
	}
}

func (l *memoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && l.now().Before(held.expiresAt) {
		return false, "", nil
	}

	lockValue := uuid.NewString()
	l.locks[key] = heldLock{value: lockValue, expiresAt: l.now().Add(expiration)}
	return true, lockValue, nil
}

func (l *memoryLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && held.value == lockValue {
		delete(l.locks, key)
	}
	return nil
}
