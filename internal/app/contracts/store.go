package contracts

import "context"

// PersistedStore is a durable string key/value store. found is false when the key
// has never been written.
type PersistedStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
