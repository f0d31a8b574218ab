// Package config reads the server configuration from an optional .env file
// and LOGIAS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"logias/internal/loader"
	"logias/internal/storage"
)

const envPrefix = "LOGIAS"

type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string
	Source    loader.Config
	Kafka     KafkaConfig
}

// KafkaConfig enables the Kafka notice sink when Topic is set.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (k KafkaConfig) Enabled() bool {
	return k.Topic != "" && len(k.Brokers) > 0
}

// LoadEnv loads path into the process environment. A missing file is not
// an error; the environment may be set directly.
func LoadEnv(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("source.kind", loader.KindFile)
	v.SetDefault("source.url", "")
	v.SetDefault("source.file", "data/logias.json")
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.use_ssl", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.key", "data/logias.json")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.table", "logias")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "")
	return v
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := newViper()

	timeout, err := time.ParseDuration(v.GetString("source.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s_SOURCE_TIMEOUT: %w", envPrefix, err)
	}

	cfg := Config{
		Addr:      v.GetString("addr"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		Source: loader.Config{
			Kind:    v.GetString("source.kind"),
			URL:     v.GetString("source.url"),
			File:    v.GetString("source.file"),
			Timeout: timeout,
			S3: storage.S3Config{
				Endpoint:  v.GetString("s3.endpoint"),
				AccessKey: v.GetString("s3.access_key"),
				SecretKey: v.GetString("s3.secret_key"),
				UseSSL:    v.GetBool("s3.use_ssl"),
			},
			S3Bucket:      v.GetString("s3.bucket"),
			S3Key:         v.GetString("s3.key"),
			PostgresDSN:   v.GetString("postgres.dsn"),
			PostgresTable: v.GetString("postgres.table"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
