// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the vault client's use cases on top of the
// cryptographic core: login and biometric unlock, per-record encryption and
// decryption, and the master password change.
//
// Services never cache the master key. Every operation fetches it from the
// session store, uses it and wipes its copy, so a key replaced by a password
// change is observed by the very next call.
package service

import (
	"context"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// LoginRequest is what the authentication flow hands to the vault once the
// server accepted the user. The password is used for key derivation only and
// is never stored or returned.
type LoginRequest struct {
	Password string
	UserID   string
	Login    string
	Pepper   string
	Token    string
}

// LoginResult reports whether the key was also kept in secure storage for
// later biometric unlock. RememberErr explains a failed attempt; the session
// works in memory either way.
type LoginResult struct {
	Remembered  bool
	RememberErr error
}

// AuthService opens and closes vault sessions.
type AuthService interface {
	// SignIn authenticates creds with the server and then performs Login.
	SignIn(ctx context.Context, creds models.Credentials, remember bool) (LoginResult, error)

	// Login derives the master key from req and opens the session. With
	// remember set the key is also written to secure storage.
	Login(ctx context.Context, req LoginRequest, remember bool) (LoginResult, error)

	// Unlock recovers the key from secure storage behind a device
	// authentication prompt. Returns ErrUnlockUnavailable when that is not
	// possible.
	Unlock(ctx context.Context) error

	// Logout locks the session. With forget set the stored key, the profile
	// and the local cache of the user are removed as well.
	Logout(ctx context.Context, forget bool) error

	// Current returns the profile of the open session.
	Current() (Profile, bool)
}

// DecryptedCredential is a credential opened for display. Fields that could
// not be decrypted hold [Placeholder] and are listed in Unavailable.
type DecryptedCredential struct {
	models.Credential
	Unavailable []string
}

// CredentialService manages the user's credential records.
type CredentialService interface {
	// EncryptRecord seals plain under the current key. Empty optional fields
	// stay empty; a missing ID is generated.
	EncryptRecord(plain models.Credential) (models.CredentialRecord, error)

	// DecryptRecord opens record under the current key. Field failures do not
	// fail the record; only a locked session does.
	DecryptRecord(record models.CredentialRecord) (DecryptedCredential, error)

	Create(ctx context.Context, plain models.Credential) (models.Credential, error)
	Update(ctx context.Context, plain models.Credential) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (DecryptedCredential, error)

	// List returns every credential, refreshing the local cache from the
	// server and falling back to the cache when the server is unreachable.
	List(ctx context.Context) ([]DecryptedCredential, error)
}

// ChangePasswordResult describes a completed master password change.
type ChangePasswordResult struct {
	Records         int
	VaultUpdated    bool
	ReloginRequired bool
}

// PasswordService changes the master password.
type PasswordService interface {
	// ChangeMasterPassword validates req, re-encrypts every record under the
	// key derived from the new password and submits them to the server. The
	// new key is committed only after the server accepted the change.
	ChangeMasterPassword(ctx context.Context, req models.ChangePasswordRequest, onProgress rotation.ProgressFunc) (ChangePasswordResult, error)
}
