package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must not be empty")
	}

	if c.RateLimit.AuthPerMinute < 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must not be negative (got %d)", c.RateLimit.AuthPerMinute)
	}
	if c.RateLimit.AuthPerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return errors.New("rate_limit.cleanup_interval must be positive")
	}

	return nil
}

func (s *StoreConfig) validate() error {
	switch s.Driver {
	case DriverBadger:
		if !s.Badger.InMemory && s.Badger.Path == "" {
			return errors.New("badger.path is required unless badger.in_memory is set")
		}
		if s.Badger.GCDiscardRatio < 0 || s.Badger.GCDiscardRatio > 1 {
			return fmt.Errorf("badger.gc_discard_ratio must be in [0, 1] (got %v)", s.Badger.GCDiscardRatio)
		}
	case DriverPostgres:
		if s.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required for the postgres driver")
		}
		if s.Postgres.MinConns > s.Postgres.MaxConns {
			return fmt.Errorf("postgres.min_conns (%d) exceeds max_conns (%d)", s.Postgres.MinConns, s.Postgres.MaxConns)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", s.Driver, DriverBadger, DriverPostgres)
	}
	return nil
}
