// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Names of the encrypted attributes of a credential. They are used in logs and
// in rotation errors to point at the attribute that failed.
const (
	FieldTitle    = "title"
	FieldUsername = "username"
	FieldSecret   = "password"
	FieldURL      = "site_url"
	FieldNotes    = "notes"
)

// CredentialRecord is a vault item exactly as the server sees it.
//
// Only ID and CategoryID are plaintext so that the server can index and
// filter records; every other attribute is a [CipheredField] produced on the
// client. Title, Username and Secret are required; URL and Notes are optional
// and stay empty when the user left them blank.
type CredentialRecord struct {
	// ID is the server-side identifier of the record.
	ID string `json:"id"`

	// CategoryID is the plaintext classification id used for server-side
	// filtering. It is never encrypted.
	CategoryID string `json:"categoryId,omitempty"`

	Title    CipheredField `json:"title"`
	Username CipheredField `json:"username"`
	Secret   CipheredField `json:"password"`
	URL      CipheredField `json:"site_url,omitempty"`
	Notes    CipheredField `json:"notes,omitempty"`
}

// Credential is the decrypted counterpart of [CredentialRecord]. It exists
// only in client memory.
type Credential struct {
	ID         string
	CategoryID string

	Title    string `validate:"required"`
	Username string `validate:"required"`
	Secret   string `validate:"required"`
	URL      string `validate:"omitempty,max=2048"`
	Notes    string
}
