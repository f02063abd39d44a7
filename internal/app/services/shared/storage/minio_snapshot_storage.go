package storage

import (
	"bytes"
	"context"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectPutter is the subset of *minio.Client used for archiving.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioSnapshotStorage struct {
	client     ObjectPutter
	bucketName string
}

func NewMinioSnapshotStorage(client ObjectPutter, bucketName string) contracts.SnapshotStorage {
	return &minioSnapshotStorage{
		client:     client,
		bucketName: bucketName,
	}
}

func (m *minioSnapshotStorage) Archive(ctx context.Context, objectName string, payload []byte) (string, error) {
	_, err := m.client.PutObject(
		ctx,
		m.bucketName,
		objectName,
		bytes.NewReader(payload),
		int64(len(payload)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.bucketName)
	}
	return objectName, nil
}
