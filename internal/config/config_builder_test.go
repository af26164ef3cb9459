package config

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

var testDeviceKeyHex = strings.Repeat("ab", DeviceKeySize)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a field set by an earlier source
// is not overwritten, while zero fields are filled from later ones.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "flags.db"}}},
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "env.db"}},
			Adapter: Adapter{HTTPAddress: "localhost:9000"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flags.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9000", cfg.Adapter.HTTPAddress)
}

func TestBuild_RejectsNegativeValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  *StructuredConfig
		want error
	}{
		{"batch size", &StructuredConfig{Crypto: Crypto{RotationBatchSize: -1}}, ErrInvalidCryptoConfigs},
		{"idle timeout", &StructuredConfig{Session: Session{IdleTimeout: -time.Second}}, ErrInvalidSessionConfigs},
		{"request timeout", &StructuredConfig{Adapter: Adapter{RequestTimeout: -time.Second}}, ErrInvalidAdapterConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.cfg)

			_, err := b.build()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DSN":  "env.db",
		"ADAPTER_ADDRESS": "localhost:7000",
	})

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env.db", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, "localhost:7000", b.configs[0].Adapter.HTTPAddress)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"SESSION_IDLE_TIMEOUT": "later"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ReturnsBuilder(t *testing.T) {
	withArgs(t)
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
}

func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	withArgs(t, "-a", "nonsense")

	b := newConfigBuilder().withFlags()
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Storage.DB.DSN = "json.db"
	payload.Crypto.RotationBatchSize = 7
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json.db", b.configs[1].Storage.DB.DSN)
	assert.Equal(t, 7, b.configs[1].Crypto.RotationBatchSize)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the path from the highest
// priority source is the one loaded.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.Storage.DB.DSN = "first.db"
	second := StructuredJSONConfig{}
	second.Storage.DB.DSN = "second.db"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "first.db", b.configs[2].Storage.DB.DSN)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsOnlyZeroFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Crypto: Crypto{RotationBatchSize: 3}})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Crypto.RotationBatchSize)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultIdleTimeout, cfg.Session.IdleTimeout)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

func TestGetClientConfig_FullStack(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.HTTPAddress = "https://vault.example.com"
	payload.Device.KeyHex = testDeviceKeyHex
	path := writeTempJSONConfig(t, payload)

	setEnvVars(t, map[string]string{"STORAGE_DB_DSN": "env.db"})
	withArgs(t, "-c", path, "-d", "flags.db", "unlock")

	cfg, err := GetClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "flags.db", cfg.Storage.DSN)
	assert.Equal(t, "https://vault.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultRotationBatchSize, cfg.Crypto.RotationBatchSize)
	assert.Len(t, cfg.Device.Key, DeviceKeySize)
	assert.Equal(t, []string{"unlock"}, cfg.Args)
}

func TestNewClientConfig_RejectsNonHexDeviceKey(t *testing.T) {
	_, err := newClientConfig(&StructuredConfig{Device: Device{KeyHex: "zz"}})
	assert.ErrorIs(t, err, ErrInvalidDeviceConfigs)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Adapter: ClientAdapter{HTTPAddress: "localhost:8080", RequestTimeout: time.Second},
			Storage: ClientStorage{DSN: "vault.db"},
			Crypto:  ClientCrypto{RotationBatchSize: 10},
			Session: ClientSession{IdleTimeout: time.Minute},
			Device:  ClientDevice{Key: make([]byte, DeviceKeySize)},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *ClientConfig)
		want   error
	}{
		{"valid", func(c *ClientConfig) {}, nil},
		{"empty dsn", func(c *ClientConfig) { c.Storage.DSN = "" }, ErrInvalidStorageConfigs},
		{"memory dsn", func(c *ClientConfig) { c.Storage.DSN = "file::memory:" }, ErrInvalidStorageConfigs},
		{"no address", func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, ErrInvalidAdapterConfigs},
		{"no timeout", func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, ErrInvalidAdapterConfigs},
		{"zero batch", func(c *ClientConfig) { c.Crypto.RotationBatchSize = 0 }, ErrInvalidCryptoConfigs},
		{"zero idle", func(c *ClientConfig) { c.Session.IdleTimeout = 0 }, ErrInvalidSessionConfigs},
		{"short device key", func(c *ClientConfig) { c.Device.Key = make([]byte, 16) }, ErrInvalidDeviceConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
