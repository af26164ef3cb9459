package vault

import "errors"

var (
	// ErrDeviceNotSecured is returned by Store when the device has no
	// passcode or biometric credential enrolled. The session can continue
	// in memory only.
	ErrDeviceNotSecured = errors.New("device has no passcode enrolled")
	// ErrStoreFailed is returned by Store for any other secure storage
	// failure. It is recoverable.
	ErrStoreFailed = errors.New("secure storage write failed")
	// ErrForgetFailed is returned by Forget when the item could not be
	// removed.
	ErrForgetFailed = errors.New("secure storage delete failed")
)
