package crypto

import (
	"errors"
	"fmt"
)

// Derivation errors. Any of them is fatal to the flow that asked for a key:
// login, registration and rotation must abort.
var (
	// ErrEmptyPassword is returned when key derivation is asked to stretch an
	// empty password.
	ErrEmptyPassword = errors.New("crypto: password is required")

	// ErrInvalidKDFParams is returned when Argon2id cost parameters are zero or
	// the requested key length is not 32 bytes.
	ErrInvalidKDFParams = errors.New("crypto: invalid key derivation parameters")

	// ErrDerivation wraps any failure of the Argon2id engine itself.
	ErrDerivation = errors.New("crypto: master key derivation failed")
)

// Key and encryption errors.
var (
	// ErrInvalidKeySize is returned when raw key material is not 32 bytes.
	ErrInvalidKeySize = errors.New("crypto: invalid key size, must be 32 bytes")

	// ErrMissingKey is returned by every cipher operation called without a
	// usable master key (nil or already wiped).
	ErrMissingKey = errors.New("crypto: master key is missing")

	// ErrEmptyPlaintext is returned by Encrypt for an empty string. Optional
	// fields should go through EncryptOptional instead.
	ErrEmptyPlaintext = errors.New("crypto: nothing to encrypt")

	// ErrRandomSource is returned when the secure random source cannot
	// produce an IV. It is a hard failure of the platform.
	ErrRandomSource = errors.New("crypto: secure random source unavailable")
)

// Decryption errors. ErrMalformedField and ErrAuthenticationFailed both wrap
// ErrDecryptFailed so a UI layer can collapse them into one message with a
// single errors.Is check.
var (
	// ErrDecryptFailed is the umbrella failure of a field decryption.
	ErrDecryptFailed = errors.New("crypto: field decryption failed")

	// ErrMalformedField is returned when a serialized field does not have
	// exactly three non-empty lowercase-hex segments or when the IV or tag
	// have the wrong length.
	ErrMalformedField = fmt.Errorf("%w: malformed field", ErrDecryptFailed)

	// ErrAuthenticationFailed is returned when the GCM tag does not verify.
	// A wrong key, corrupted data and deliberate tampering all look the same.
	ErrAuthenticationFailed = fmt.Errorf("%w: authentication failed", ErrDecryptFailed)
)

// IsDecryptFailure reports whether err is a field-local decryption failure
// (malformed input or failed authentication).
func IsDecryptFailure(err error) bool {
	return errors.Is(err, ErrDecryptFailed)
}
