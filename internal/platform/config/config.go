// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file
is honoured through 'joho/godotenv' before parsing.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Environments

const (
	// EnvironmentProduction enables strict cookies and CORS.
	EnvironmentProduction = "PROD"
	// EnvironmentDevelopment relaxes cookie SameSite and CORS.
	EnvironmentDevelopment = "DEV"
)

// # Configuration Schema

// Config holds all runtime configuration for the Metaversitas API server.
type Config struct {

	// Server settings
	Environment string `env:"ENVIRONMENT" envDefault:"PROD"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`
	Host        string `env:"WEB_APP_HOST,required"`
	Port        string `env:"WEB_APP_PORT,required"`
	PortSSL     string `env:"WEB_APP_PORT_SSL,required"`
	TLSMode     bool   `env:"WEB_APP_TLS_MODE,required"`
	TLSCertPath string `env:"TLS_CERT_PATH" envDefault:"./cert/cert.pem"`
	TLSKeyPath  string `env:"TLS_KEY_PATH"  envDefault:"./cert/key.pem"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis)
	RedisHost     string `env:"REDIS_HOSTNAME,required"`
	RedisPort     string `env:"REDIS_PORT,required"`
	RedisTLS      bool   `env:"REDIS_IS_TLS,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Bearer signing and session lifetimes
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	// BearerLifetime is the bearer validity, e.g. "10m".
	BearerLifetime time.Duration `env:"JWT_EXPIRED_IN,required"`
	// SessionMaxAgeMinutes is the credential lifetime in minutes.
	SessionMaxAgeMinutes int `env:"JWT_MAX_AGE,required"`
	// ExtendSessionOnRefresh re-arms the credential TTL when a bearer is refreshed.
	ExtendSessionOnRefresh bool `env:"SESSION_EXTEND_ON_REFRESH" envDefault:"false"`

	// Cookies
	CookieDomain string `env:"COOKIE_DOMAIN"`

	// Caches
	ProfileCacheTTL     time.Duration `env:"PROFILE_CACHE_TTL"      envDefault:"30m"`
	GameVersionCacheTTL time.Duration `env:"GAME_VERSION_CACHE_TTL" envDefault:"1h"`

	// Game client
	PhotonAPIKey string `env:"PHOTON_API_KEY"`

	// KDFWorkers bounds concurrent Argon2 computations (0 = number of CPUs).
	KDFWorkers int `env:"KDF_WORKERS" envDefault:"0"`

	// Object Storage (MinIO / S3-compatible)
	StorageEndpoint  string `env:"MINIO_HOST_URL"`
	StorageBucket    string `env:"MINIO_BUCKET_NAME"`
	StorageRegion    string `env:"MINIO_BUCKET_REGION" envDefault:"us-east-1"`
	StorageAccessKey string `env:"MINIO_ACCESS_KEY"`
	StorageSecretKey string `env:"MINIO_SECRET_KEY"`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into a [Config].
func Load() (*Config, error) {

	// Variables already present in the process environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the process environment into a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces cross-field rules that struct tags cannot express.
func (c *Config) validate() error {
	if c.Environment != EnvironmentProduction && c.Environment != EnvironmentDevelopment {
		return fmt.Errorf("config: ENVIRONMENT must be %s or %s, got %q", EnvironmentProduction, EnvironmentDevelopment, c.Environment)
	}

	if c.BearerLifetime <= 0 {
		return errors.New("config: JWT_EXPIRED_IN must be positive")
	}

	// Bearer lifetime must stay strictly shorter than the session lifetime.
	if c.SessionLifetime() <= c.BearerLifetime {
		return fmt.Errorf("config: JWT_MAX_AGE (%s) must exceed JWT_EXPIRED_IN (%s)", c.SessionLifetime(), c.BearerLifetime)
	}

	if c.TLSMode {
		for _, path := range []string{c.TLSCertPath, c.TLSKeyPath} {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("config: TLS material %s: %w", path, err)
			}
		}
	}

	return nil
}

// SessionLifetime returns the credential lifetime.
func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.SessionMaxAgeMinutes) * time.Minute
}

// RedisURL assembles the connection URL, selecting rediss:// when TLS is on.
func (c *Config) RedisURL() string {
	scheme := "redis"
	if c.RedisTLS {
		scheme = "rediss"
	}

	redisURL := url.URL{Scheme: scheme, Host: net.JoinHostPort(c.RedisHost, c.RedisPort)}
	if c.RedisPassword != "" {
		redisURL.User = url.UserPassword("", c.RedisPassword)
	}

	return redisURL.String()
}

// HTTPAddr is the plain listener address.
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// HTTPSAddr is the TLS listener address.
func (c *Config) HTTPSAddr() string {
	return net.JoinHostPort(c.Host, c.PortSSL)
}

// ObjectStorageEnabled reports whether profile photos can be presigned.
func (c *Config) ObjectStorageEnabled() bool {
	return c.StorageBucket != "" && c.StorageEndpoint != ""
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}
