package storage

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore wraps the MinIO client for document bytes. Metadata lives
// in Postgres; only the file content goes here.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, bucket, objectKey string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, bucket, objectKey string) error
	EnsureBucket(ctx context.Context, bucket string) error
}

type minioStore struct {
	client *minio.Client
}

func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool) (ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStore{client: client}, nil
}

func (m *minioStore) Upload(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (m *minioStore) PresignedURL(ctx context.Context, bucket, objectKey string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, bucket, objectKey, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioStore) Delete(ctx context.Context, bucket, objectKey string) error {
	return m.client.RemoveObject(ctx, bucket, objectKey, minio.RemoveObjectOptions{})
}

func (m *minioStore) EnsureBucket(ctx context.Context, bucket string) error {
	found, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}
