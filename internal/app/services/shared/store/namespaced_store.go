package store

import (
	"context"
	"hms-portal-service/internal/app/contracts"
)

type namespacedStore struct {
	inner     contracts.PersistedStore
	namespace string
}

// WithNamespace prefixes every key so several deployments can share one backend.
func WithNamespace(inner contracts.PersistedStore, namespace string) contracts.PersistedStore {
	if namespace == "" {
		return inner
	}
	return &namespacedStore{inner: inner, namespace: namespace}
}

func (s *namespacedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.namespace+key)
}

func (s *namespacedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.namespace+key, value)
}
