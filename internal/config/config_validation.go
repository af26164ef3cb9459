// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// DeviceKeySize is the required length of the decoded device key.
const DeviceKeySize = 32

// validate checks source-independent invariants of the merged
// [StructuredConfig]. Client-specific requirements live in
// [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Crypto.RotationBatchSize < 0 {
		return ErrInvalidCryptoConfigs
	}
	if cfg.Session.IdleTimeout < 0 {
		return ErrInvalidSessionConfigs
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Crypto.RotationBatchSize <= 0 {
		return ErrInvalidCryptoConfigs
	}

	if cfg.Session.IdleTimeout <= 0 {
		return ErrInvalidSessionConfigs
	}

	if len(cfg.Device.Key) != DeviceKeySize {
		return ErrInvalidDeviceConfigs
	}

	return nil
}
