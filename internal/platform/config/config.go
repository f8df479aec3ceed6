// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config loads runtime settings from the process environment.

Settings are grouped by the component that consumes them; each group maps to
an environment prefix via caarlos0/env, so DATABASE_URL fills Database.URL.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The returned value is treated as read-only after startup.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment names the deployment stage.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Valid reports whether e is a known stage.
func (e Environment) Valid() bool {
	switch e {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	}
	return false
}

// # Configuration Schema

// Config is the root of the settings tree.
type Config struct {
	Environment Environment `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool        `env:"DEBUG"`

	HTTP      HTTPConfig      `envPrefix:"HTTP_"`
	Database  DatabaseConfig  `envPrefix:"DATABASE_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	Selection SelectionConfig `envPrefix:"SELECTION_"`
	Resolver  ResolverConfig  `envPrefix:"RESOLVER_"`
}

// HTTPConfig drives the listener and CORS.
type HTTPConfig struct {
	Port                string `env:"PORT"                  envDefault:"8080"`
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"snapduel.app"`
}

// DatabaseConfig drives the pgx pool and migrations.
type DatabaseConfig struct {
	URL                string        `env:"URL,required,notEmpty"`
	MaxConns           int32         `env:"MAX_CONNS"            envDefault:"25"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"250ms"`
	MigrationsDir      string        `env:"MIGRATIONS_DIR"       envDefault:"./data/migrations"`
}

// RedisConfig drives the ranking cache.
type RedisConfig struct {
	URL        string        `env:"URL,required,notEmpty"`
	RankingTTL time.Duration `env:"RANKING_TTL" envDefault:"30s"`
}

// JWTConfig points at the RS256 key pair.
type JWTConfig struct {
	PrivateKeyPath string `env:"PRIVATE_KEY_PATH,required,notEmpty"`
	PublicKeyPath  string `env:"PUBLIC_KEY_PATH,required,notEmpty"`
}

// SelectionConfig tunes the battle and deck candidate pools.
type SelectionConfig struct {
	BattlePoolLimit    int `env:"BATTLE_POOL_LIMIT"    envDefault:"500"`
	DeckPoolMultiplier int `env:"DECK_POOL_MULTIPLIER" envDefault:"3"`
}

// ResolverConfig tunes the entitlement lookup circuit breaker.
type ResolverConfig struct {
	BreakerFailures uint32        `env:"BREAKER_FAILURES" envDefault:"5"`
	BreakerTimeout  time.Duration `env:"BREAKER_TIMEOUT"  envDefault:"15s"`
}

// # Configuration Loading

// Load parses the environment into a [Config] and validates cross-field rules.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate reports every rule violation at once.
func (c *Config) validate() error {
	var errs []error

	if !c.Environment.Valid() {
		errs = append(errs, fmt.Errorf("ENVIRONMENT %q is not one of development, staging, production", c.Environment))
	}
	if c.Database.MaxConns < 2 {
		errs = append(errs, fmt.Errorf("DATABASE_MAX_CONNS must be at least 2, got %d", c.Database.MaxConns))
	}
	if c.Selection.BattlePoolLimit < 2 {
		errs = append(errs, fmt.Errorf("SELECTION_BATTLE_POOL_LIMIT must be at least 2, got %d", c.Selection.BattlePoolLimit))
	}
	if c.Selection.DeckPoolMultiplier < 1 {
		errs = append(errs, fmt.Errorf("SELECTION_DECK_POOL_MULTIPLIER must be at least 1, got %d", c.Selection.DeckPoolMultiplier))
	}
	if c.Resolver.BreakerFailures == 0 {
		errs = append(errs, errors.New("RESOLVER_BREAKER_FAILURES must be positive"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether CORS and logging run in their relaxed mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// OriginSuffix returns the domain suffix the CORS middleware accepts.
func (c *Config) OriginSuffix() string {
	return c.HTTP.AllowedOriginSuffix
}
