// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the configured command and blocks until it is done.
	Run(ctx context.Context) error
	// Close locks the session and releases local resources.
	Close() error
}
