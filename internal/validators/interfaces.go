// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the vault: login
// credentials, plain credentials about to be encrypted and master password
// change requests.
//
// Rule violations are reported as the sentinel errors of errors.go so that
// callers can branch with errors.Is instead of parsing messages.
package validators

import "context"

// Validator validates a request value. When fields are given only those
// struct fields are checked.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
