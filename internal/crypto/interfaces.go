package crypto

import "github.com/MKhiriev/go-pass-keeper-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a low-entropy password into the user's master key.
//
// Derivation is a pure function of (password, userID, pepper): the same triple
// always yields the same key, which is what allows the key to be rebuilt from
// the password at any time without ever storing it.
//
// Salt = userID + ":" + pepper, replaced by its SHA-256 digest when shorter
// than 8 bytes. The Argon2id cost parameters are pinned per deployment; see
// [KDFParamsV1].
type KeyDeriver interface {
	// Derive stretches password into a 32-byte master key. It is CPU-bound
	// and deliberately slow; interactive callers should use [DeriveAsync].
	// Returns ErrEmptyPassword for an empty password and an error wrapping
	// ErrDerivation if the Argon2id engine fails.
	Derive(password, userID, pepper string) (*MasterKey, error)

	// Params returns the cost parameters the deriver was built with.
	Params() KDFParams
}

// FieldCipher encrypts and decrypts single credential attributes with
// AES-256-GCM. It never caches a key: every call receives the key to use.
//
// Wire format of a field: hex(iv) ":" hex(tag) ":" hex(ciphertext), lowercase,
// with a fresh 12-byte IV per call and a 16-byte tag.
type FieldCipher interface {
	// Encrypt seals plaintext under key. Returns ErrEmptyPlaintext for an
	// empty string, ErrMissingKey for a nil or wiped key and ErrRandomSource
	// when no IV can be generated.
	Encrypt(plaintext string, key *MasterKey) (models.CipheredField, error)

	// EncryptOptional behaves like Encrypt but returns an empty field,
	// without encrypting anything, when plaintext is empty.
	EncryptOptional(plaintext string, key *MasterKey) (models.CipheredField, error)

	// Decrypt opens a serialized field. Failures are typed: ErrMissingKey,
	// ErrMalformedField or ErrAuthenticationFailed; the last two wrap
	// ErrDecryptFailed. Decrypt never returns unauthenticated bytes.
	Decrypt(field models.CipheredField, key *MasterKey) (string, error)

	// DecryptOptional returns ("", nil) for an empty field and otherwise
	// behaves like Decrypt.
	DecryptOptional(field models.CipheredField, key *MasterKey) (string, error)
}
