package storage

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds object storage settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string // optional; skips the bucket location lookup when set
	UseSSL    bool
}

// MinioSigner presigns uploads into a single bucket.
type MinioSigner struct {
	client *minio.Client
	bucket string
}

// NewMinioSigner creates a MinIO client for cfg. No request is made until
// EnsureBucket or PresignPut is called.
func NewMinioSigner(cfg Config) (*MinioSigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MinIO client")
	}
	logrus.WithFields(logrus.Fields{"endpoint": cfg.Endpoint, "bucket": cfg.Bucket}).Info("MinIO client created")
	return &MinioSigner{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinioSigner) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrapf(err, "failed to check bucket %s", s.bucket)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrapf(err, "failed to create bucket %s", s.bucket)
	}
	logrus.WithField("bucket", s.bucket).Info("bucket created")
	return nil
}

// PresignPut returns a URL that accepts a PUT of objectName until ttl elapses.
func (s *MinioSigner) PresignPut(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, ttl)
	if err != nil {
		return "", errors.Wrapf(err, "failed to presign %s", objectName)
	}
	return u.String(), nil
}
