// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package device implements the device-authentication facility that gates
// access to secure storage. On a terminal client the "device credential" is
// a local passcode whose Argon2id verifier lives in configuration.
package device

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/device_mock.go -package=mock

// Authenticator reports device capabilities and prompts the user to prove
// presence before a protected secret is released.
type Authenticator interface {
	// HasHardware reports whether the device can prompt for authentication
	// at all.
	HasHardware() bool

	// IsEnrolled reports whether a credential is set up on the device.
	IsEnrolled() bool

	// Authenticate shows prompt and blocks until the user authenticates.
	// It returns nil on success, ErrAuthCancelled when the user dismisses
	// the prompt, or ErrAuthFailed when the credential was wrong.
	Authenticate(ctx context.Context, prompt string) error
}

// SecretReader reads a secret line from the user without echo.
type SecretReader interface {
	Interactive() bool
	ReadSecret(prompt string) ([]byte, error)
}
