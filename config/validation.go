package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the sensitive values required to run the
// service are present, whichever source they were loaded from.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server_port is not set")
	}
	if cfg.DBHost == "" {
		errors = append(errors, "db_host is not set")
	}
	if cfg.DBPort == "" {
		errors = append(errors, "db_port is not set")
	}
	if cfg.DBUser == "" {
		errors = append(errors, "db_user is not set")
	}
	if cfg.DBName == "" {
		errors = append(errors, "db_name is not set")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "db_password is not set")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "jwt_secret is not set")
	}
	if cfg.RedisHost == "" && cfg.RedisURL == "" {
		errors = append(errors, "redis_host or redis_url must be set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
