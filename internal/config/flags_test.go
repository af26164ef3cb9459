package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8080},
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectedAddr: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{name: "missing colon", input: "localhost8080", expectError: true},
		{name: "non numeric port", input: "localhost:abc", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "hostname is not an ip", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, *addr)
		})
	}
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet("cmd", flag.ContinueOnError)

	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8080",
				"-d", "/tmp/vault.db",
				"-c", "/path/to/config.json",
				"-log-file", "/tmp/vault.log",
				"-request-timeout", "30s",
				"-rotation-batch-size", "20",
				"-idle-timeout", "3m",
				"-device-key", "beef",
				"-passcode-verifier", "verifier",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
				assert.Equal(t, "/tmp/vault.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "/tmp/vault.log", cfg.App.LogFile)
				assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
				assert.Equal(t, 20, cfg.Crypto.RotationBatchSize)
				assert.Equal(t, 3*time.Minute, cfg.Session.IdleTimeout)
				assert.Equal(t, "beef", cfg.Device.KeyHex)
				assert.Equal(t, "verifier", cfg.Device.PasscodeVerifier)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Adapter.HTTPAddress)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.JSONFilePath)
				assert.Zero(t, cfg.Crypto.RotationBatchSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			cfg, err := ParseFlags()
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

// TestParseFlags_LeavesCommandArgs verifies that positional arguments after
// the flags are kept for command dispatch.
func TestParseFlags_LeavesCommandArgs(t *testing.T) {
	withArgs(t, "-d", "/tmp/vault.db", "reveal", "record-1")

	_, err := ParseFlags()
	require.NoError(t, err)
	assert.Equal(t, []string{"reveal", "record-1"}, flag.Args())
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"invalid", "localhost:abc", "localhost"} {
		t.Run(addr, func(t *testing.T) {
			withArgs(t, "-a", addr)

			_, err := ParseFlags()
			assert.Error(t, err)
		})
	}
}
