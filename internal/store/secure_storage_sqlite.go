package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/device"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// SQLiteSecureStorage keeps secure items in the secure_items table. Every
// value is sealed with AES-256-GCM under the per-install device key, in the
// same iv:tag:ct form used for credential fields.
type SQLiteSecureStorage struct {
	db        *DB
	cipher    crypto.FieldCipher
	deviceKey *crypto.MasterKey
	auth      device.Authenticator
	logger    *logger.Logger
}

// NewSQLiteSecureStorage returns a storage sealing values under deviceKey.
// Returns ErrInvalidDeviceKey unless deviceKey is 32 bytes.
func NewSQLiteSecureStorage(db *DB, deviceKey []byte, auth device.Authenticator, log *logger.Logger) (*SQLiteSecureStorage, error) {
	key, err := crypto.NewMasterKey(deviceKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeviceKey, err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &SQLiteSecureStorage{
		db:        db,
		cipher:    crypto.NewFieldCipher(),
		deviceKey: key,
		auth:      auth,
		logger:    log,
	}, nil
}

// SetItem seals value and upserts it. Items restricted to secured devices
// are refused with device.ErrNotEnrolled when no credential is enrolled.
func (s *SQLiteSecureStorage) SetItem(ctx context.Context, name string, value []byte, policy models.AccessPolicy) error {
	if policy.WhenPasscodeSetThisDeviceOnly && !s.auth.IsEnrolled() {
		return device.ErrNotEnrolled
	}

	sealed, err := s.cipher.Encrypt(string(value), s.deviceKey)
	if err != nil {
		return fmt.Errorf("seal secure item: %w", err)
	}

	query, args, err := buildUpsertSecureItemQuery(name, string(sealed), policy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "SQLiteSecureStorage.SetItem").
			Str("item", name).
			Msg("failed to upsert secure item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetItem loads name, runs the device authentication prompt when the item
// requires it and returns the opened value.
func (s *SQLiteSecureStorage) GetItem(ctx context.Context, name, prompt string) ([]byte, error) {
	query, args, err := buildSelectSecureItemQuery(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		sealed         string
		requireAuth    bool
		thisDeviceOnly bool
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&sealed, &requireAuth, &thisDeviceOnly)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSecureItemNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "SQLiteSecureStorage.GetItem").
			Str("item", name).
			Msg("failed to read secure item")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if thisDeviceOnly && !s.auth.IsEnrolled() {
		return nil, device.ErrNotEnrolled
	}
	if requireAuth {
		if err = s.auth.Authenticate(ctx, prompt); err != nil {
			return nil, err
		}
	}

	value, err := s.cipher.Decrypt(models.CipheredField(sealed), s.deviceKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecureItemCorrupt, err)
	}

	return []byte(value), nil
}

// DeleteItem removes name; a missing item is not an error.
func (s *SQLiteSecureStorage) DeleteItem(ctx context.Context, name string) error {
	query, args, err := buildDeleteSecureItemQuery(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "SQLiteSecureStorage.DeleteItem").
			Str("item", name).
			Msg("failed to delete secure item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
