// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-door-keeper daemon. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// the template hash key, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Hardware selects the drivers for the bolt actuator and the
	// credential sensors.
	Hardware Hardware `envPrefix:"HARDWARE_"`

	// Notifier holds settings for the outbound webhook notifier.
	Notifier Notifier `envPrefix:"NOTIFIER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used to digest fingerprint template
	// samples before storage. Raw biometric data is never persisted.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the database driver: "pgx" for PostgreSQL or
	// "sqlite3" for an on-device SQLite file.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the Data Source Name (connection string) used to open the
	// database connection. For PostgreSQL this is a postgres:// URI;
	// for SQLite it is the database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Hardware selects the physical drivers attached to the controller.
type Hardware struct {
	// BoltDriver selects the bolt actuator implementation: "gpio" for a
	// relay-driven bolt or "mock" for development without hardware.
	// Env: HARDWARE_BOLT_DRIVER
	BoltDriver string `env:"BOLT_DRIVER"`

	// BoltPin is the BCM pin number driving the bolt relay when the
	// gpio driver is selected.
	// Env: HARDWARE_BOLT_PIN
	BoltPin int `env:"BOLT_PIN"`
}

// Notifier holds configuration for the outbound webhook notifier.
type Notifier struct {
	// WebhookURL is the HTTP endpoint that receives notification events
	// (lockouts, approvals, door transitions). Empty disables the notifier.
	// Env: NOTIFIER_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`

	// RequestTimeout bounds a single webhook delivery attempt.
	// Env: NOTIFIER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// KeypadPollInterval is how often the keypad worker polls the sensor
	// for buffered key presses.
	// Env: WORKERS_KEYPAD_POLL_INTERVAL
	KeypadPollInterval time.Duration `env:"KEYPAD_POLL_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
