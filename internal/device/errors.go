package device

import "errors"

var (
	// ErrAuthCancelled is returned when the user dismisses the
	// authentication prompt or no input is available.
	ErrAuthCancelled = errors.New("device authentication cancelled")
	// ErrAuthFailed is returned when the user failed every allowed attempt.
	ErrAuthFailed = errors.New("device authentication failed")
	// ErrNotEnrolled is returned by Authenticate when no passcode is
	// enrolled on the device.
	ErrNotEnrolled = errors.New("no device passcode enrolled")
	// ErrNoTerminal is returned when a secret is requested but stdin is not
	// an interactive terminal.
	ErrNoTerminal = errors.New("stdin is not a terminal")
	// ErrInvalidVerifier is returned when an encoded passcode verifier
	// cannot be parsed.
	ErrInvalidVerifier = errors.New("invalid passcode verifier")
)
