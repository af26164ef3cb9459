package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "log_file": "/var/log/vault.log" },
		"adapter": {
			"http_address": "https://vault.example.com",
			"request_timeout": "30s"
		},
		"storage": { "db": { "dsn": "/tmp/vault.db" } },
		"crypto": { "rotation_batch_size": 50 },
		"session": { "idle_timeout": "2m" },
		"device": { "key": "abcd", "passcode_verifier": "v" }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/log/vault.log", cfg.App.LogFile)
	assert.Equal(t, "https://vault.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 50, cfg.Crypto.RotationBatchSize)
	assert.Equal(t, 2*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "abcd", cfg.Device.KeyHex)
	assert.Equal(t, "v", cfg.Device.PasscodeVerifier)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"session":{"idle_timeout":1000000000}}`), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Session.IdleTimeout)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"adapter":{"request_timeout":"soon"}}`), 0o600))

	cfg, err := parseJSON(p)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
