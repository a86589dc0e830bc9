package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Port          string
	Env           string // "dev" or "production"; production sets the Secure cookie flag
	MongoURI      string
	DBName        string
	JWTSecret     string
	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	MaxUploadMB   int64
}

// ErrMissingJWTSecret blocks startup: tokens signed with an empty or
// default secret would be forgeable.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set to a strong secret")

func Load() (*Config, error) {
	maxMB := int64(5)
	if v := getEnv("MAX_UPLOAD_MB", "5"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxMB = n
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "dev"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("MONGODB_DB", "bookshelf"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		S3Bucket:      getEnv("AWS_S3_BUCKET", ""),
		S3Region:      getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:   maxMB,
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == "change-me-in-production" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
