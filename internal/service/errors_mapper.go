// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service error.
// The original error stays in the chain.
func mapAdapterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrTokenExpired),
		errors.Is(err, adapter.ErrNoToken),
		errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	default:
		return err
	}
}

// mapLoginError is mapAdapterError for the login call, where 401 means
// wrong credentials rather than an expired session.
func mapLoginError(err error) error {
	if errors.Is(err, adapter.ErrUnauthorized) {
		return fmt.Errorf("%w: %w", ErrWrongPassword, err)
	}
	return fmt.Errorf("%w: %w", ErrLoginFailed, err)
}
