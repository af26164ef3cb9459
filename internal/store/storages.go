package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/config"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/device"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
)

// ClientStorages groups all client-side storage components into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// DB is the shared sqlite connection.
	DB *DB

	// Credentials is the cache of encrypted credential records.
	Credentials CredentialRepository

	// SecureItems is the device-gated secure item store.
	SecureItems *SQLiteSecureStorage
}

// NewClientStorages initialises the client storage layer. It performs the
// following steps:
//  1. Opens the sqlite file named by cfg.DSN, creating it if needed.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the credential repository and the secure item store.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, deviceKey []byte, auth device.Authenticator, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	secureItems, err := NewSQLiteSecureStorage(db, deviceKey, auth, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ClientStorages{
		DB:          db,
		Credentials: NewCredentialRepository(db, logger),
		SecureItems: secureItems,
	}, nil
}

// Close releases the sqlite connection.
func (s *ClientStorages) Close() error {
	return s.DB.Close()
}
