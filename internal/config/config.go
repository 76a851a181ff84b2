// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package config

import (
	"time"
)

// SessionLifetime is the fixed validity window of a session token. The cookie
// carrying the token uses the same value as its Max-Age.
const SessionLifetime = 7 * 24 * time.Hour

// StructuredConfig is the top-level configuration container for the chronos
// server. It aggregates all sub-configurations and is populated by merging
// defaults, environment variables, command-line flags and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings such as log level and version.
	App App `envPrefix:"APP_"`

	// Session holds the signing secret and session cookie parameters.
	Session Session `envPrefix:"SESSION_"`

	// Hasher holds the password hashing work factor and pool size.
	Hasher Hasher `envPrefix:"HASHER_"`

	// Gate holds extra public path patterns for the authorization gate.
	Gate Gate `envPrefix:"GATE_"`

	// Storage holds configuration for the credential store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// metrics servers.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Session is the immutable session configuration. It is built once at
// startup and handed by value to the session issuer and the HTTP layer.
type Session struct {
	// Secret signs and verifies session tokens. Must be kept confidential.
	// Env: SESSION_SECRET
	Secret string `env:"SECRET"`

	// Issuer is the "iss" claim embedded in every issued token.
	// Env: SESSION_ISSUER
	Issuer string `env:"ISSUER"`

	// Lifetime is always SessionLifetime; it is not configurable.
	Lifetime time.Duration

	// UpdateAge is how old a token must be before an authenticated request
	// re-issues it (sliding expiry).
	// Env: SESSION_UPDATE_AGE
	UpdateAge time.Duration `env:"UPDATE_AGE"`

	// CookieName is the name of the cookie carrying the session token.
	// Env: SESSION_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME"`

	// CookieSecure sets the Secure attribute on the session cookie.
	// Env: SESSION_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// LoginPath is where unauthenticated callers are redirected.
	LoginPath string

	// HomePath is where authenticated callers land from the auth pages.
	HomePath string
}

// Hasher configures the password hasher.
type Hasher struct {
	// Cost is the bcrypt work factor.
	// Env: HASHER_COST
	Cost int `env:"COST"`

	// Workers bounds the number of concurrent hash operations.
	// Env: HASHER_WORKERS
	Workers int `env:"WORKERS"`
}

// Gate configures the authorization gate.
type Gate struct {
	// PublicPaths are glob patterns added to the built-in public paths.
	// Env: GATE_PUBLIC_PATHS (comma separated)
	PublicPaths []string `env:"PUBLIC_PATHS" envSeparator:","`
}

// Storage groups the configuration for the credential store.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the credential store backend.
type DB struct {
	// Driver selects the backend: "postgres", "sqlite" or "memory".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name. A postgres URL for the postgres driver,
	// a file path for sqlite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// MetricsAddress is the TCP address of the Prometheus metrics server.
	// Empty disables it.
	// Env: SERVER_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// StaticDir is served under /static/ when set.
	// Env: SERVER_STATIC_DIR
	StaticDir string `env:"STATIC_DIR"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// GetSeedConfig reads the same sources as [GetStructuredConfig] but validates
// only the hasher and storage groups.
func GetSeedConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		buildSeed()
}
