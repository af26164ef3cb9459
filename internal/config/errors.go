package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCryptoConfigs indicates a non-positive rotation batch size.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidSessionConfigs indicates a non-positive idle timeout.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidDeviceConfigs indicates a device key that is missing, not
	// hex, or not 32 bytes long.
	ErrInvalidDeviceConfigs = errors.New("invalid device configuration")
)
