package config

import (
	"encoding/hex"
	"flag"
	"fmt"
	"time"
)

// ClientApp holds process-level settings of the client.
type ClientApp struct {
	// LogFile is the resolved log file path, possibly empty.
	LogFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address of the password server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DSN is the sqlite connection string.
	DSN string
}

// ClientCrypto holds rotation pipeline tunables.
type ClientCrypto struct {
	RotationBatchSize int
}

// ClientSession holds idle lock settings.
type ClientSession struct {
	IdleTimeout time.Duration
}

// ClientDevice holds the decoded device secrets.
type ClientDevice struct {
	// Key is the 32-byte device key.
	Key []byte
	// PasscodeVerifier is the encoded passcode verifier, empty when no
	// passcode is enrolled.
	PasscodeVerifier string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Crypto  ClientCrypto
	Session ClientSession
	Device  ClientDevice

	// Args holds the positional arguments left after flag parsing, the first
	// one being the command name.
	Args []string
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg, err := newClientConfig(cfg)
	if err != nil {
		return nil, err
	}
	clientCfg.Args = flag.Args()

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	deviceKey, err := hex.DecodeString(cfg.Device.KeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: device key is not hex: %v", ErrInvalidDeviceConfigs, err)
	}

	return &ClientConfig{
		App: ClientApp{LogFile: cfg.App.LogFile},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{DSN: cfg.Storage.DB.DSN},
		Crypto:  ClientCrypto{RotationBatchSize: cfg.Crypto.RotationBatchSize},
		Session: ClientSession{IdleTimeout: cfg.Session.IdleTimeout},
		Device: ClientDevice{
			Key:              deviceKey,
			PasscodeVerifier: cfg.Device.PasscodeVerifier,
		},
	}, nil
}
