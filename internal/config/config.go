package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration parameters of the application.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// JWTSecret signs session tokens issued on login.
	JWTSecret string `env:"JWT_SECRET,required"`
	// TokenTTL bounds how long an issued session token stays valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// StorageBackend selects where uploaded photo files live: "local" writes
	// to UploadDir, "s3" uses the MinIO/S3 adapter.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"static/uploads"`
	// MaxUploadBytes caps multipart photo uploads.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"16777216"`

	// AdminEmail and AdminPassword seed the admin account on startup. The
	// password should be rotated after the first login in any real
	// deployment.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@snapshowdown.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"changeme123"`

	// MinIO settings, only required when STORAGE_BACKEND=s3.
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION"`

	// RabbitMQ settings. The broker is optional: when RABBITMQ_URL is unset
	// the notification event relay is disabled and worker mode refuses to
	// start. Notification rows are written either way.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"notification_events"`
	}
}

// LoadConfig loads configuration from environment variables.
// In development it first tries to load a .env file.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration from environment: %w", err)
	}

	// Manual defaults for fields without envDefault.
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	if cfg.StorageBackend == "s3" {
		if cfg.MinioEndpoint == "" || cfg.MinioAccessKeyID == "" || cfg.MinioSecretAccessKey == "" ||
			cfg.MinioBucketName == "" || cfg.MinioRegion == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=s3 requires MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME and MINIO_REGION")
		}
	}

	return &cfg, nil
}
