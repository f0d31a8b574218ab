package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Config holds the connection settings of an S3-compatible endpoint.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// S3Service is a read-only client for S3-compatible storage.
type S3Service struct {
	client *minio.Client
	log    *zap.Logger
}

// NewS3Service initializes and returns a new S3 storage service.
func NewS3Service(cfg S3Config, log *zap.Logger) (*S3Service, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing one or more required S3 settings: endpoint, access key, secret key")
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Info("configured MinIO endpoint", zap.String("endpoint", cfg.Endpoint))
	return &S3Service{client: minioClient, log: log}, nil
}

// OpenObject streams an object. The caller closes the returned reader.
// A missing bucket or key surfaces as an error here rather than on first read.
func (s *S3Service) OpenObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}

	// GetObject is lazy; Stat forces the request so NoSuchKey is reported now.
	if _, err := object.Stat(); err != nil {
		_ = object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %s/%s does not exist: %w", bucketName, objectKey, err)
		}
		return nil, fmt.Errorf("failed to stat object %s/%s: %w", bucketName, objectKey, err)
	}

	s.log.Debug("opened object", zap.String("bucket", bucketName), zap.String("key", objectKey))
	return object, nil
}
