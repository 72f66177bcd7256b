package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is complete for the current
// environment. Development and test fall back to a local sqlite store when
// no Postgres host is configured; production requires the full set.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return ValidationError{Field: "JWTSecret", Message: "required in production"}
		}
		cfg.JWTSecret = "dev-secret"
	}

	if cfg.DBHost == "" && cfg.SQLitePath == "" {
		if IsProduction() {
			return ValidationError{Field: "DBHost", Message: "required in production"}
		}
		cfg.SQLitePath = "cookbookd.db"
	}

	if cfg.DBHost != "" {
		if cfg.DBUser == "" {
			return ValidationError{Field: "DBUser", Message: "required when DB_HOST is set"}
		}
		if cfg.DBName == "" {
			return ValidationError{Field: "DBName", Message: "required when DB_HOST is set"}
		}
	}

	return nil
}
