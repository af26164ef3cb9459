// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault persists the master key across process restarts so that a
// returning user can unlock with a device credential instead of retyping the
// master password.
//
// The key and the system pepper are written as one JSON record into a
// [SecureStorage] under a fixed item name. Reads are gated by device
// authentication; every read failure collapses into "no key available" and
// the caller falls back to password entry.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/device"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// ItemName is the fixed secure storage item that holds the vault record.
const ItemName = "user_secure_vault_data"

// UnlockPrompt is shown by the device authentication prompt on Retrieve.
const UnlockPrompt = "Unlock your vault"

// Secrets is the content of the vault record.
type Secrets struct {
	MasterKey    *crypto.MasterKey
	SystemPepper string
}

// record is the stored JSON form.
type record struct {
	MasterKey    string `json:"masterKey"`
	SystemPepper string `json:"systemPepper"`
}

// KeyVault stores and retrieves [Secrets] through a [SecureStorage].
type KeyVault struct {
	storage SecureStorage
	auth    device.Authenticator
	logger  *logger.Logger
}

// NewKeyVault returns a KeyVault backed by storage and gated by auth.
func NewKeyVault(storage SecureStorage, auth device.Authenticator, log *logger.Logger) *KeyVault {
	if log == nil {
		log = logger.Nop()
	}
	return &KeyVault{storage: storage, auth: auth, logger: log}
}

// Store writes key and pepper with [models.StrictAccessPolicy].
//
// Returns ErrDeviceNotSecured when the device has no credential enrolled and
// ErrStoreFailed for any other failure. Neither error invalidates the
// in-memory session.
func (v *KeyVault) Store(ctx context.Context, key *crypto.MasterKey, pepper string) error {
	if !key.Usable() {
		return fmt.Errorf("%w: %w", ErrStoreFailed, crypto.ErrMissingKey)
	}
	if !v.auth.IsEnrolled() {
		return ErrDeviceNotSecured
	}

	payload, err := json.Marshal(record{MasterKey: key.Base64(), SystemPepper: pepper})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	defer clear(payload)

	err = v.storage.SetItem(ctx, ItemName, payload, models.StrictAccessPolicy)
	switch {
	case err == nil:
		v.logger.Debug().Msg("master key stored in secure storage")
		return nil
	case errors.Is(err, device.ErrNotEnrolled):
		return ErrDeviceNotSecured
	default:
		v.logger.Err(err).Msg("secure storage write failed")
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
}

// Retrieve prompts for device authentication and returns the stored
// secrets. Every failure (no hardware, no enrolment, cancelled or failed
// prompt, missing item, corrupt record) returns (nil, false); the reason is
// only logged.
func (v *KeyVault) Retrieve(ctx context.Context) (*Secrets, bool) {
	if !v.auth.HasHardware() {
		v.logger.Debug().Msg("device authentication unavailable")
		return nil, false
	}
	if !v.auth.IsEnrolled() {
		v.logger.Debug().Msg("no device credential enrolled")
		return nil, false
	}

	payload, err := v.storage.GetItem(ctx, ItemName, UnlockPrompt)
	if err != nil {
		v.logger.Debug().Str("reason", err.Error()).Msg("secure storage read declined")
		return nil, false
	}
	defer clear(payload)

	var rec record
	if err = json.Unmarshal(payload, &rec); err != nil {
		v.logger.Warn().Msg("secure storage record is corrupt")
		return nil, false
	}

	key, err := crypto.MasterKeyFromBase64(rec.MasterKey)
	if err != nil {
		v.logger.Warn().Msg("secure storage record holds an invalid key")
		return nil, false
	}

	return &Secrets{MasterKey: key, SystemPepper: rec.SystemPepper}, true
}

// Forget deletes the vault record.
func (v *KeyVault) Forget(ctx context.Context) error {
	if err := v.storage.DeleteItem(ctx, ItemName); err != nil {
		return fmt.Errorf("%w: %w", ErrForgetFailed, err)
	}
	v.logger.Debug().Msg("master key removed from secure storage")
	return nil
}
