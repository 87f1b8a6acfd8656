package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver    string // postgres or sqlite
	DatabaseURL string // full DSN, takes precedence over the parts below
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Plan export storage
	S3BucketName string
	AWSRegion    string

	// Planner behaviour
	PlanTimezone      string
	SeedOnStart       bool
	RecipeWritesPerHr int
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets for anything unset
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		// A missing .env is normal outside local development
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[Config] failed to load .env: %v", err)
		}
	}

	cfg := &Config{
		ServerPort:    lookup("server_port", "8080"),
		ServerHost:    lookup("server_host", "0.0.0.0"),
		DBDriver:      strings.ToLower(lookup("db_driver", "postgres")),
		DatabaseURL:   lookup("database_url", ""),
		DBHost:        lookup("db_host", ""),
		DBPort:        lookup("db_port", "5432"),
		DBUser:        lookup("db_user", ""),
		DBPassword:    lookup("db_password", ""),
		DBName:        lookup("db_name", ""),
		DBSSLMode:     lookup("db_ssl_mode", "disable"),
		SQLitePath:    lookup("sqlite_path", "mealplanner.db"),
		RedisHost:     lookup("redis_host", ""),
		RedisPort:     lookup("redis_port", "6379"),
		RedisPassword: lookup("redis_password", ""),
		RedisURL:      lookup("redis_url", ""),
		JWTSecret:     lookup("jwt_secret", ""),
		S3BucketName:  lookup("s3_bucket_name", ""),
		AWSRegion:     lookup("aws_region", ""),
		PlanTimezone:  lookup("plan_timezone", "UTC"),
	}

	if origins := lookup("cors_allowed_origins", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(lookup("redis_db", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(lookup("token_ttl", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.SeedOnStart, err = strconv.ParseBool(lookup("seed_on_start", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_ON_START: %w", err)
	}
	if cfg.RecipeWritesPerHr, err = strconv.Atoi(lookup("recipe_writes_per_hour", "60")); err != nil {
		return nil, fmt.Errorf("invalid RECIPE_WRITES_PER_HOUR: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN builds the connection string for lib/pq
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a redis endpoint was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Location resolves PlanTimezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.PlanTimezone)
}

// lookup reads NAME from the environment, then the secret file name, then
// falls back to def
func lookup(name, def string) string {
	if value, ok := os.LookupEnv(strings.ToUpper(name)); ok && value != "" {
		return value
	}
	if value := readSecret(name); value != "" {
		return value
	}
	return def
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
