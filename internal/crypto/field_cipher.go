// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

const (
	// IVSize is the GCM nonce length used for every field.
	IVSize = 12
	// TagSize is the GCM authentication tag length.
	TagSize = 16

	fieldSeparator = ":"
	fieldSegments  = 3
)

// Field is a parsed [models.CipheredField].
type Field struct {
	IV         []byte
	Tag        []byte
	Ciphertext []byte
}

// ParseField splits a serialized field into IV, tag and ciphertext.
// It requires exactly three non-empty segments of lowercase hex, a 12-byte IV
// and a 16-byte tag, and returns ErrMalformedField otherwise. Uppercase hex is
// rejected so that every single-character change of a valid field either
// changes the decoded bytes or makes the field malformed.
func ParseField(field models.CipheredField) (Field, error) {
	parts := strings.Split(string(field), fieldSeparator)
	if len(parts) != fieldSegments {
		return Field{}, fmt.Errorf("%w: %d segments", ErrMalformedField, len(parts))
	}

	iv, err := decodeLowerHex(parts[0])
	if err != nil {
		return Field{}, fmt.Errorf("%w: iv: %v", ErrMalformedField, err)
	}
	tag, err := decodeLowerHex(parts[1])
	if err != nil {
		return Field{}, fmt.Errorf("%w: tag: %v", ErrMalformedField, err)
	}
	ct, err := decodeLowerHex(parts[2])
	if err != nil {
		return Field{}, fmt.Errorf("%w: ciphertext: %v", ErrMalformedField, err)
	}

	if len(iv) != IVSize {
		return Field{}, fmt.Errorf("%w: iv is %d bytes", ErrMalformedField, len(iv))
	}
	if len(tag) != TagSize {
		return Field{}, fmt.Errorf("%w: tag is %d bytes", ErrMalformedField, len(tag))
	}

	return Field{IV: iv, Tag: tag, Ciphertext: ct}, nil
}

// FormatField serializes f into the wire format.
func FormatField(f Field) models.CipheredField {
	return models.CipheredField(
		hex.EncodeToString(f.IV) + fieldSeparator +
			hex.EncodeToString(f.Tag) + fieldSeparator +
			hex.EncodeToString(f.Ciphertext),
	)
}

func decodeLowerHex(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty segment")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, fmt.Errorf("invalid hex character at %d", i)
		}
	}
	return hex.DecodeString(s)
}

// fieldCipher is the private implementation of [FieldCipher].
type fieldCipher struct {
	// random is the IV source. Always crypto/rand outside of tests.
	random io.Reader
}

// NewFieldCipher constructs a [FieldCipher] drawing IVs from crypto/rand.
func NewFieldCipher() FieldCipher {
	return &fieldCipher{random: rand.Reader}
}

// Encrypt implements [FieldCipher]. AES-GCM appends the tag to the sealed
// output; it is split off and serialized between IV and ciphertext.
func (c *fieldCipher) Encrypt(plaintext string, key *MasterKey) (models.CipheredField, error) {
	if !key.Usable() {
		return "", ErrMissingKey
	}
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVSize)
	if _, err = io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - TagSize

	return FormatField(Field{
		IV:         iv,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}), nil
}

// EncryptOptional implements [FieldCipher].
func (c *fieldCipher) EncryptOptional(plaintext string, key *MasterKey) (models.CipheredField, error) {
	if plaintext == "" {
		return "", nil
	}
	return c.Encrypt(plaintext, key)
}

// Decrypt implements [FieldCipher]. The ciphertext and tag are rejoined as
// ciphertext||tag before opening.
func (c *fieldCipher) Decrypt(field models.CipheredField, key *MasterKey) (string, error) {
	if !key.Usable() {
		return "", ErrMissingKey
	}

	f, err := ParseField(field)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(f.Ciphertext)+len(f.Tag))
	sealed = append(sealed, f.Ciphertext...)
	sealed = append(sealed, f.Tag...)

	plaintext, err := gcm.Open(nil, f.IV, sealed, nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}

	return string(plaintext), nil
}

// DecryptOptional implements [FieldCipher].
func (c *fieldCipher) DecryptOptional(field models.CipheredField, key *MasterKey) (string, error) {
	if field.IsEmpty() {
		return "", nil
	}
	return c.Decrypt(field, key)
}

func newGCM(key *MasterKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.b)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
