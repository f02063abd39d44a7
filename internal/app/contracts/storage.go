package contracts

import "context"

// SnapshotStorage archives opaque payloads and returns the stored object name.
type SnapshotStorage interface {
	Archive(ctx context.Context, objectName string, payload []byte) (string, error)
}
