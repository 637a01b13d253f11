package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BucketConfig describes one S3-compatible bucket. Endpoint stays empty for
// real AWS; BaseURL overrides the public URL prefix (useful behind a CDN).
type BucketConfig struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	BaseURL  string
}

type StorageConfig struct {
	MenuImages    BucketConfig
	PaymentConfig BucketConfig
	PaymentProofs BucketConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
}

func NewConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.Port = envOr("APP_PORT", "8080")

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	cfg.Postgres.Port = envOr("DB_PORT", "5432")
	cfg.Postgres.User = os.Getenv("DB_USER")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	cfg.Postgres.SSLMode = envOr("DB_SSLMODE", "disable")
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute
	cfg.Postgres.MigrationsPath = envOr("DB_MIGRATIONS_PATH", "migrations")

	for _, req := range []struct{ name, val string }{
		{"DB_HOST", cfg.Postgres.Host},
		{"DB_USER", cfg.Postgres.User},
		{"DB_PASSWORD", cfg.Postgres.Password},
		{"DB_NAME", cfg.Postgres.DBName},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("config: %s is required", req.name)
		}
	}

	cfg.Redis.Addr = envOr("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: REDIS_DB must be an integer: %w", err)
		}
		cfg.Redis.DB = db
	}

	cfg.Storage.MenuImages = bucketFromEnv("MENU_IMAGES", "menu-images")
	cfg.Storage.PaymentConfig = bucketFromEnv("PAYMENT_CONFIG", "payment-config")
	cfg.Storage.PaymentProofs = bucketFromEnv("PAYMENT_PROOFS", "payment-proofs")

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = envOr("GEMINI_MODEL", "gemini-1.5-flash")

	return cfg, nil
}

// bucketFromEnv reads S3_<PREFIX>_BUCKET etc., sharing the account-level
// S3_REGION/S3_KEY/S3_SECRET/S3_ENDPOINT values across buckets.
func bucketFromEnv(prefix, defaultBucket string) BucketConfig {
	return BucketConfig{
		Bucket:   envOr("S3_"+prefix+"_BUCKET", defaultBucket),
		Region:   envOr("S3_REGION", "us-east-1"),
		Key:      os.Getenv("S3_KEY"),
		Secret:   os.Getenv("S3_SECRET"),
		Endpoint: os.Getenv("S3_ENDPOINT"),
		BaseURL:  os.Getenv("S3_" + prefix + "_URL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
