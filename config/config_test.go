package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "localhost")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "glucolog")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("TEST_DB_PASSWORD", "postgres")
	t.Setenv("TEST_JWT_SECRET", "test-secret")
	t.Setenv("TEST_REDIS_PASSWORD", "redis-pass")
	t.Setenv("TEST_REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "glucolog", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
}

func TestLoadConfigCIRequiresPassword(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("TEST_DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_DB_PASSWORD")
}

func TestLoadConfigFromSecrets(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "development")

	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)

	secrets := map[string]string{
		"db_user":        "postgres",
		"db_password":    "postpass",
		"jwt_secret":     "dev-jwt-secret",
		"redis_password": "redis-pass",
		"db_host":        "localhost",
		"db_port":        "5432",
		"db_name":        "glucolog",
		"db_ssl_mode":    "disable",
		"redis_host":     "localhost",
		"redis_port":     "6379",
		"redis_url":      "redis://localhost:6379",
		"server_port":    "8080",
		"server_host":    "localhost",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value+"\n"), 0o644))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// Values are trimmed of trailing whitespace.
	assert.Equal(t, "postpass", cfg.DBPassword)
	assert.Equal(t, "dev-jwt-secret", cfg.JWTSecret)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadConfigSecretsMissing(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Run("CI wins", func(t *testing.T) {
		t.Setenv("CI", "true")
		t.Setenv("ENV", "production")
		assert.Equal(t, CI, GetEnvironment())
	})

	t.Run("ENV switch", func(t *testing.T) {
		t.Setenv("CI", "false")

		t.Setenv("ENV", "production")
		assert.Equal(t, Production, GetEnvironment())
		assert.True(t, IsProduction())

		t.Setenv("ENV", "test")
		assert.Equal(t, Test, GetEnvironment())
		assert.True(t, IsTest())

		t.Setenv("ENV", "")
		assert.Equal(t, Development, GetEnvironment())
	})
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "postpass",
		DBName:     "glucolog",
		JWTSecret:  "secret",
		RedisHost:  "localhost",
	}
	assert.NoError(t, ValidateConfig(valid))

	t.Run("redis URL satisfies the redis requirement", func(t *testing.T) {
		cfg := *valid
		cfg.RedisHost = ""
		cfg.RedisURL = "redis://localhost:6379"
		assert.NoError(t, ValidateConfig(&cfg))
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		cfg := *valid
		cfg.JWTSecret = ""
		err := ValidateConfig(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret")
	})

	t.Run("missing database password", func(t *testing.T) {
		cfg := *valid
		cfg.DBPassword = ""
		err := ValidateConfig(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_password")
	})
}
