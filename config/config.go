package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// SQLitePath switches the store to a local sqlite file when set
	// (development and test environments).
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Image storage
	UploadDir string
	MediaURL  string
	S3Bucket  string

	// Password-reset links are built against this base URL.
	PublicBaseURL string

	// SMTP configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string
}

// LoadConfig creates a new Config instance from environment variables, with
// Docker-secret fallback for the sensitive values in production.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: envOr("SERVER_PORT", "8080"),
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  envOr("DB_SSL_MODE", "disable"),
		SQLitePath: os.Getenv("SQLITE_PATH"),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: envOr("REDIS_PORT", "6379"),
		RedisDB:   0,
		RedisURL:  os.Getenv("REDIS_URL"),

		UploadDir:     envOr("UPLOAD_DIR", "uploads"),
		MediaURL:      envOr("MEDIA_URL", "/media"),
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
		PublicBaseURL: envOr("PUBLIC_BASE_URL", "http://localhost:8080"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		EmailFrom:     envOr("EMAIL_FROM", "noreply@cookbookd.dev"),
		EmailFromName: envOr("EMAIL_FROM_NAME", "cookbookd"),
	}

	cfg.DBPassword = secretOr("DB_PASSWORD", "db_password")
	cfg.JWTSecret = secretOr("JWT_SECRET", "jwt_secret")
	cfg.RedisPassword = secretOr("REDIS_PASSWORD", "redis_password")
	cfg.SMTPPassword = secretOr("SMTP_PASSWORD", "smtp_password")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envOr returns the value of the environment variable or a default.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// secretOr reads the environment variable first and falls back to a Docker
// secret of the given name.
func secretOr(envName, secretName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
