package archive

import (
	"bytes"
	"context"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MinioConfig locates the bucket reports are archived to
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

// MinioArchiver writes documents to an S3-compatible bucket
type MinioArchiver struct {
	mc     *minio.Client
	bucket string
	prefix string
	logger *logrus.Logger
}

// NewMinio creates a MinioArchiver. It does not contact the server.
func NewMinio(cfg MinioConfig, logger *logrus.Logger) (*MinioArchiver, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("archive endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create object storage client")
	}

	return &MinioArchiver{
		mc:     mc,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist
func (a *MinioArchiver) EnsureBucket(ctx context.Context, region string) error {
	exists, err := a.mc.BucketExists(ctx, a.bucket)
	if err != nil {
		return errors.Wrapf(err, "failed to check bucket %s", a.bucket)
	}
	if exists {
		return nil
	}

	if err := a.mc.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return errors.Wrapf(err, "failed to create bucket %s", a.bucket)
	}
	a.logger.WithField("bucket", a.bucket).Info("Created archive bucket")
	return nil
}

// ObjectKey returns the full object key for key
func (a *MinioArchiver) ObjectKey(key string) string {
	if a.prefix == "" {
		return key
	}
	return a.prefix + "/" + strings.TrimLeft(key, "/")
}

// Store implements Archiver
func (a *MinioArchiver) Store(ctx context.Context, key, contentType string, data []byte) error {
	objectKey := a.ObjectKey(key)
	info, err := a.mc.PutObject(ctx, a.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to upload %s", objectKey)
	}

	a.logger.WithFields(logrus.Fields{
		"bucket": a.bucket,
		"key":    objectKey,
		"size":   info.Size,
	}).Debug("Archived document")
	return nil
}
