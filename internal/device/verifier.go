package device

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	verifierScheme  = "argon2id"
	verifierSaltLen = 16
	verifierKeyLen  = 32

	verifierTime    = 2
	verifierMemory  = 19 * 1024
	verifierThreads = 1
)

// Verifier holds the Argon2id hash of a device passcode.
type Verifier struct {
	salt []byte
	hash []byte
}

// NewVerifier hashes passcode with a fresh random salt.
func NewVerifier(passcode []byte) (*Verifier, error) {
	if len(passcode) == 0 {
		return nil, fmt.Errorf("%w: empty passcode", ErrInvalidVerifier)
	}
	salt := make([]byte, verifierSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate verifier salt: %w", err)
	}
	return &Verifier{salt: salt, hash: hashPasscode(passcode, salt)}, nil
}

// ParseVerifier decodes the "argon2id$<salt hex>$<hash hex>" form produced
// by Verifier.String.
func ParseVerifier(encoded string) (*Verifier, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != verifierScheme {
		return nil, ErrInvalidVerifier
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) != verifierSaltLen {
		return nil, ErrInvalidVerifier
	}
	hash, err := hex.DecodeString(parts[2])
	if err != nil || len(hash) != verifierKeyLen {
		return nil, ErrInvalidVerifier
	}
	return &Verifier{salt: salt, hash: hash}, nil
}

// Verify reports whether passcode matches, in constant time.
func (v *Verifier) Verify(passcode []byte) bool {
	candidate := hashPasscode(passcode, v.salt)
	return subtle.ConstantTimeCompare(candidate, v.hash) == 1
}

func (v *Verifier) String() string {
	return verifierScheme + "$" + hex.EncodeToString(v.salt) + "$" + hex.EncodeToString(v.hash)
}

func hashPasscode(passcode, salt []byte) []byte {
	return argon2.IDKey(passcode, salt, verifierTime, verifierMemory, verifierThreads, verifierKeyLen)
}
