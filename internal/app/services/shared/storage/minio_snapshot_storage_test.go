package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	body, _ := io.ReadAll(reader)
	args := m.Called(ctx, bucketName, objectName, string(body), objectSize, opts.ContentType)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName}, args.Error(0)
}

func TestMinioSnapshotStorage_Archive(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`[{"id":"u1"}]`)

	t.Run("Stores Payload As JSON", func(t *testing.T) {
		putter := new(MockObjectPutter)
		putter.On("PutObject", ctx, "snapshots", "directory_u9_x.json", string(payload), int64(len(payload)), "application/json").Return(nil)

		name, err := NewMinioSnapshotStorage(putter, "snapshots").Archive(ctx, "directory_u9_x.json", payload)
		require.NoError(t, err)
		assert.Equal(t, "directory_u9_x.json", name)
		putter.AssertExpectations(t)
	})

	t.Run("Upload Failure", func(t *testing.T) {
		putter := new(MockObjectPutter)
		putter.On("PutObject", ctx, "snapshots", "obj.json", string(payload), int64(len(payload)), "application/json").Return(errors.New("bucket missing"))

		_, err := NewMinioSnapshotStorage(putter, "snapshots").Archive(ctx, "obj.json", payload)
		assert.Error(t, err)
	})
}
