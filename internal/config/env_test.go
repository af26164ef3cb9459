// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_FILE": "/var/log/vault.log",

		"ADAPTER_ADDRESS":         "localhost:8080",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		"STORAGE_DB_DSN": "/tmp/vault.db",

		"CRYPTO_ROTATION_BATCH_SIZE": "25",
		"SESSION_IDLE_TIMEOUT":       "10m",

		"DEVICE_KEY":               "00112233",
		"DEVICE_PASSCODE_VERIFIER": "verifier",
	}
	setEnvVars(t, envVars)

	// Act
	cfg, err := parseEnv()

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/var/log/vault.log", cfg.App.LogFile)
	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 25, cfg.Crypto.RotationBatchSize)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "00112233", cfg.Device.KeyHex)
	assert.Equal(t, "verifier", cfg.Device.PasscodeVerifier)
}

func TestParseEnv_Empty(t *testing.T) {
	setEnvVars(t, map[string]string{})

	cfg, err := parseEnv()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"SESSION_IDLE_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	_, err := parseEnv()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_InvalidBatchSize(t *testing.T) {
	setEnvVars(t, map[string]string{"CRYPTO_ROTATION_BATCH_SIZE": "ten"})

	_, err := parseEnv()
	require.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"ADAPTER_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg, err := parseEnv()

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Adapter.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"APP_LOG_FILE",
		"ADAPTER_ADDRESS",
		"ADAPTER_REQUEST_TIMEOUT",
		"STORAGE_DB_DSN",
		"CRYPTO_ROTATION_BATCH_SIZE",
		"SESSION_IDLE_TIMEOUT",
		"DEVICE_KEY",
		"DEVICE_PASSCODE_VERIFIER",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
