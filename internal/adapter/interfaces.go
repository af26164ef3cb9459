// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the vault server over HTTP/REST.
//
// The server only ever receives encrypted credential records; key material
// and plaintext never leave the client. [ServerAdapter] hides the protocol
// from the service layer, and HTTP statuses are mapped onto the sentinel
// errors of errors.go so callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the vault server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)

	// Token returns the current bearer token, or "" before login.
	Token() string

	// Login authenticates with the server. On success the bearer token from
	// the Authorization response header is stored via SetToken and the user
	// record, including the system pepper, is returned.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// ListCredentials fetches every encrypted record of the user.
	ListCredentials(ctx context.Context) ([]models.CredentialRecord, error)

	// GetCredential fetches one encrypted record.
	GetCredential(ctx context.Context, id string) (models.CredentialRecord, error)

	// SaveCredential creates a record on the server.
	SaveCredential(ctx context.Context, record models.CredentialRecord) error

	// UpdateCredential replaces an existing record.
	UpdateCredential(ctx context.Context, record models.CredentialRecord) error

	// DeleteCredential removes a record.
	DeleteCredential(ctx context.Context, id string) error

	// ResetMasterPassword submits a password change together with every
	// record re-encrypted under the new key. The server applies all of it or
	// nothing.
	ResetMasterPassword(ctx context.Context, req models.ResetMasterPasswordRequest) error
}
