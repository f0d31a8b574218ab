package loader

import (
	"context"
	"io"

	"logias/internal/models"
)

// ObjectOpener is the slice of the storage client the S3 source needs.
type ObjectOpener interface {
	OpenObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error)
}

// S3Source reads the dataset document from one object in a bucket.
type S3Source struct {
	store  ObjectOpener
	bucket string
	key    string
}

func NewS3Source(store ObjectOpener, bucket, key string) *S3Source {
	return &S3Source{store: store, bucket: bucket, key: key}
}

func (s *S3Source) Describe() string { return "s3://" + s.bucket + "/" + s.key }

func (s *S3Source) Fetch(ctx context.Context) ([]models.Logia, error) {
	object, err := s.store.OpenObject(ctx, s.bucket, s.key)
	if err != nil {
		return nil, loadError("%s: %w", s.Describe(), err)
	}
	defer object.Close()
	return decode(object)
}
