package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	GCS    GCSConfig
	Upload UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,       default=task_management"`
	AppName  string `env:"MONGO_APP_NAME, default=task-management-api"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=0"`
}

type GCSConfig struct {
	Bucket          string `env:"GCS_BUCKET,           default=task-uploads"`
	CredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
}

type UploadConfig struct {
	// MaxSize is passed to the body-limit middleware, e.g. "10M".
	MaxSize string `env:"UPLOAD_MAX_SIZE, default=10M"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
