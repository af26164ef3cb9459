// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the vault
// client. It aggregates all sub-configurations and is populated by merging
// values from command-line flags, environment variables, an optional JSON
// file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log file location.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local sqlite database that caches
	// encrypted records and backs the secure item store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the server address and request timeout used by the
	// REST transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Crypto holds tunables of the key rotation pipeline.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Session holds the idle lock settings of the in-memory key session.
	Session Session `envPrefix:"SESSION_"`

	// Device holds the per-install secrets that back the device
	// authentication facility.
	Device Device `envPrefix:"DEVICE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogFile is the path of the JSON log file. Empty selects a "logs" file
	// next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the sqlite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// DSN is the sqlite file path or URI (e.g. "vault.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds configuration for the server transport.
type Adapter struct {
	// HTTPAddress is the base address of the password server, with or
	// without scheme (e.g. "localhost:8080", "https://vault.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Crypto holds rotation pipeline tunables. Key derivation parameters are
// pinned in code and deliberately not configurable.
type Crypto struct {
	// RotationBatchSize is the number of records re-encrypted between two
	// progress reports.
	// Env: CRYPTO_ROTATION_BATCH_SIZE
	RotationBatchSize int `env:"ROTATION_BATCH_SIZE"`
}

// Session holds in-memory session settings.
type Session struct {
	// IdleTimeout is how long an unlocked session may stay unused before the
	// idle lock worker clears the key.
	// Env: SESSION_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`
}

// Device holds the per-install device secrets.
type Device struct {
	// KeyHex is the 32-byte device key, hex encoded, that seals items in the
	// secure item store.
	// Env: DEVICE_KEY
	KeyHex string `env:"KEY"`

	// PasscodeVerifier is the Argon2id verifier of the device passcode. An
	// empty verifier means no passcode is enrolled on this device.
	// Env: DEVICE_PASSCODE_VERIFIER
	PasscodeVerifier string `env:"PASSCODE_VERIFIER"`
}

// Default values applied for every field left empty by all other sources.
const (
	DefaultDSN               = "vault.db"
	DefaultRequestTimeout    = 15 * time.Second
	DefaultRotationBatchSize = 10
	DefaultIdleTimeout       = 5 * time.Minute
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Adapter: Adapter{RequestTimeout: DefaultRequestTimeout},
		Crypto:  Crypto{RotationBatchSize: DefaultRotationBatchSize},
		Session: Session{IdleTimeout: DefaultIdleTimeout},
	}
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (first source wins for every
// non-zero field):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		withDefaults().
		build()
}
