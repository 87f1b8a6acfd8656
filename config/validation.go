package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	lines := make([]string, len(e))
	for i, v := range e {
		lines[i] = v.Error()
	}
	return strings.Join(lines, "\n")
}

// requirements lists the settings that may not be empty per environment
var requirements = map[Environment][]string{
	Development: {"jwt_secret"},
	Test:        {"jwt_secret"},
	CI:          {"jwt_secret"},
	Production:  {"jwt_secret", "redis"},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	for _, req := range requirements[env] {
		switch req {
		case "jwt_secret":
			if cfg.JWTSecret == "" {
				errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
			} else if env == Production && len(cfg.JWTSecret) < 32 {
				errs = append(errs, ValidationError{"JWT_SECRET", "must be at least 32 characters in production"})
			}
		case "redis":
			if !cfg.RedisEnabled() {
				errs = append(errs, ValidationError{"REDIS_URL", "redis is required in production"})
			}
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			if cfg.DBHost == "" {
				errs = append(errs, ValidationError{"DB_HOST", "is required when DATABASE_URL is not set"})
			}
			if cfg.DBUser == "" {
				errs = append(errs, ValidationError{"DB_USER", "is required when DATABASE_URL is not set"})
			}
			if cfg.DBName == "" {
				errs = append(errs, ValidationError{"DB_NAME", "is required when DATABASE_URL is not set"})
			}
		}
	case "sqlite":
		if env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not supported in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if _, err := time.LoadLocation(cfg.PlanTimezone); err != nil {
		errs = append(errs, ValidationError{"PLAN_TIMEZONE", err.Error()})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL", "must be positive"})
	}
	if cfg.RecipeWritesPerHr <= 0 {
		errs = append(errs, ValidationError{"RECIPE_WRITES_PER_HOUR", "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
