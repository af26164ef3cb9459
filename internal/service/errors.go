package service

import "errors"

var (
	// ErrSessionLocked is returned when an operation needs the master key
	// and the session holds none.
	ErrSessionLocked = errors.New("vault is locked, unlock or log in first")

	// ErrNotLoggedIn is returned when no account is known on this device.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrUnlockUnavailable means the key could not be recovered from secure
	// storage (cancelled prompt, no device credential, nothing stored). The
	// user has to log in with the master password.
	ErrUnlockUnavailable = errors.New("could not recover the key, log in with your master password")

	ErrLoginFailed    = errors.New("login failed")
	ErrWrongPassword  = errors.New("wrong password")
	ErrSessionExpired = errors.New("session expired, log in again")

	// ErrPasswordChangeRejected is returned when the server did not accept
	// the re-encrypted records. The old master key stays in use.
	ErrPasswordChangeRejected = errors.New("password change was not applied")

	ErrMissingRecordID = errors.New("credential id is required")
)
