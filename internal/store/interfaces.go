// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local persistence of the vault client: a
// sqlite cache of encrypted credential records and the secure item storage
// that keeps the master key behind device authentication.
//
// Records are cached exactly as the server stores them, every attribute in
// its encrypted wire form. Nothing in this package ever sees plaintext.
package store

import (
	"context"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CredentialRepository caches the encrypted credential records of a user.
// Records are returned in the order they were first saved.
type CredentialRepository interface {
	// SaveCredential inserts record or replaces the cached record with the
	// same ID, keeping its position.
	SaveCredential(ctx context.Context, userID string, record models.CredentialRecord) error

	// GetCredential returns one record or ErrCredentialNotFound.
	GetCredential(ctx context.Context, userID, id string) (models.CredentialRecord, error)

	// ListCredentials returns every cached record of the user.
	ListCredentials(ctx context.Context, userID string) ([]models.CredentialRecord, error)

	// ReplaceCredentials atomically swaps the whole cache of the user for
	// records, preserving their order.
	ReplaceCredentials(ctx context.Context, userID string, records []models.CredentialRecord) error

	// DeleteCredential drops one cached record or returns
	// ErrCredentialNotFound.
	DeleteCredential(ctx context.Context, userID, id string) error

	// DeleteCredentials drops every cached record of the user.
	DeleteCredentials(ctx context.Context, userID string) error
}
