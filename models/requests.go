// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ResetMasterPasswordRequest is the body of the server's all-or-nothing
// "change master password" call. The server verifies CurrentPassword, stores
// the proof for NewPassword and replaces every record in Items in one
// transaction, or applies nothing.
type ResetMasterPasswordRequest struct {
	CurrentPassword string             `json:"currentPassword"`
	NewPassword     string             `json:"newPassword"`
	Items           []CredentialRecord `json:"items"`
}

// CredentialsResponse is the body returned by the credential listing endpoint.
type CredentialsResponse struct {
	Passwords []CredentialRecord `json:"passwords"`
}

// Credentials is the body of the login call. The password travels to the
// server's own authentication endpoint only; the vault never stores it.
type Credentials struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ErrorResponse is the error body returned by the server. Only the first
// message is shown to the user.
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// ChangePasswordRequest is what the user typed on the change-password form.
// It never leaves the client; the server receives a
// [ResetMasterPasswordRequest] built from it.
type ChangePasswordRequest struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,nefield=CurrentPassword,min=8"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}
