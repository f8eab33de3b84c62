// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/mosaic/internal/platform/constants"
	"github.com/taibuivan/mosaic/pkg/query"
)

// # Configuration Schema

// Database holds the PostgreSQL settings shared by the server and the migrate commands.
type Database struct {
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// Cache holds the Redis settings. Redis also carries region cache invalidation.
type Cache struct {
	RedisURL string `env:"REDIS_URL,required"`

	// RegionInvalidationChannel is the pub/sub channel on which region edits are announced.
	RegionInvalidationChannel string `env:"REGION_INVALIDATION_CHANNEL" envDefault:"mosaic:regions:invalidate"`
}

// Signing holds the RS256 key pair used to issue editor tokens.
type Signing struct {
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
}

// Config holds all runtime configuration for the Mosaic server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	Database
	Cache

	// Token verification keys. Only the public key is needed to serve requests.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Composition
	TemplateDir       string `env:"TEMPLATE_DIR"`
	DefaultLayoutSlug string `env:"DEFAULT_LAYOUT_SLUG" envDefault:"default"`

	// ResolverCacheTTL bounds how long resolved link URLs are reused.
	ResolverCacheTTL time.Duration `env:"RESOLVER_CACHE_TTL" envDefault:"5m"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadSection parses only the variables of one section, for commands that
// do not need the full server configuration.
func LoadSection[T Database | Cache | Signing]() (T, error) {
	section, err := env.ParseAs[T]()
	if err != nil {
		return section, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return section, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowsOrigin reports whether origin may call the API cross-site: the
// application domain and its subdomains, plus the comma-separated EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	if strings.HasSuffix(origin, constants.AppDomain) {
		return true
	}
	return slices.Contains(query.StringSlice(c.ExtraOrigins), origin)
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
