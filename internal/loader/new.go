package loader

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"logias/internal/storage"
)

// Kinds of source accepted by New.
const (
	KindHTTP     = "http"
	KindFile     = "file"
	KindS3       = "s3"
	KindPostgres = "postgres"
)

// Config selects and parameterizes the dataset source.
type Config struct {
	Kind    string
	URL     string
	File    string
	Timeout time.Duration

	S3       storage.S3Config
	S3Bucket string
	S3Key    string

	PostgresDSN   string
	PostgresTable string
}

// New builds the Source described by cfg.
func New(cfg Config, log *zap.Logger) (Source, error) {
	switch cfg.Kind {
	case KindHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("http source needs a URL")
		}
		return NewHTTPSource(cfg.URL, cfg.Timeout), nil
	case KindFile, "":
		if cfg.File == "" {
			return nil, fmt.Errorf("file source needs a path")
		}
		return NewFileSource(cfg.File), nil
	case KindS3:
		if cfg.S3Bucket == "" || cfg.S3Key == "" {
			return nil, fmt.Errorf("s3 source needs a bucket and a key")
		}
		store, err := storage.NewS3Service(cfg.S3, log)
		if err != nil {
			return nil, err
		}
		return NewS3Source(store, cfg.S3Bucket, cfg.S3Key), nil
	case KindPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres source needs a DSN")
		}
		table := cfg.PostgresTable
		if table == "" {
			table = "logias"
		}
		return NewPostgresSource(cfg.PostgresDSN, table), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
