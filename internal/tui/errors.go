// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/service"
)

// HumanizeError turns a service error into a one-line message for the user.
func HumanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrWrongPassword):
		return "Wrong password"
	case errors.Is(err, service.ErrSessionLocked):
		return "The vault is locked, run `unlock` or `login`"
	case errors.Is(err, service.ErrSessionExpired):
		return "The server session has expired, run `login`"
	case errors.Is(err, service.ErrNotLoggedIn):
		return "Not logged in on this device, run `login`"
	case errors.Is(err, service.ErrUnlockUnavailable):
		return "Device unlock is not available, log in with your password"
	case errors.Is(err, rotation.ErrRotationAborted) && crypto.IsDecryptFailure(err):
		return "A record could not be decrypted, nothing was changed"
	case errors.Is(err, ErrUserQuit):
		return "Cancelled, nothing was changed"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the server is unavailable"
	}

	return err.Error()
}
