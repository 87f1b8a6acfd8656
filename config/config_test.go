package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	for _, name := range []string{
		"DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_USER", "DB_NAME", "JWT_SECRET",
		"REDIS_URL", "REDIS_HOST", "TOKEN_TTL", "PLAN_TIMEZONE", "SEED_ON_START",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "mealplanner")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PLAN_TIMEZONE", "Europe/Berlin")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "host=localhost port=5433 user=postgres password=postgres dbname=mealplanner sslmode=disable", cfg.PostgresDSN())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadConfigFromSecrets(t *testing.T) {
	setTestEnv(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret-file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "database_url"), []byte("postgres://u:p@db:5432/app"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret-file", cfg.JWTSecret)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.PostgresDSN())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedOnStart)
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"JWT_SECRET", "DB_HOST", "DB_USER", "DB_NAME"}, fields)
}

func TestValidateConfigProduction(t *testing.T) {
	setTestEnv(t)
	t.Setenv("ENV", "production")

	cfg := &Config{
		DBDriver:          "sqlite",
		SQLitePath:        "x.db",
		JWTSecret:         "short",
		PlanTimezone:      "UTC",
		TokenTTL:          time.Hour,
		RecipeWritesPerHr: 10,
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
	assert.Contains(t, err.Error(), "redis is required")
	assert.Contains(t, err.Error(), "sqlite is not supported")
}

func TestInvalidTimezone(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("PLAN_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLAN_TIMEZONE")
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://plan.example.com, ,http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://plan.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
}
