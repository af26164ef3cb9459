// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// MasterKeySize is the length of a master key in bytes (AES-256).
const MasterKeySize = 32

const redacted = "[REDACTED]"

// MasterKey is the 256-bit symmetric secret every field of a user's vault is
// encrypted with.
//
// The key must never reach logs or ordinary persistence: String, GoString and
// MarshalJSON all render a placeholder. Call Wipe once the key is no longer
// needed; a wiped key is rejected by every cipher operation.
type MasterKey struct {
	b     []byte
	wiped bool
}

// NewMasterKey copies raw into a new MasterKey. The caller may zero raw
// afterwards. Returns ErrInvalidKeySize unless raw is exactly 32 bytes.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	if len(raw) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(raw))
	}
	b := make([]byte, MasterKeySize)
	copy(b, raw)
	return &MasterKey{b: b}, nil
}

// MasterKeyFromBase64 decodes a standard-base64 key as stored by the secure
// key vault.
func MasterKeyFromBase64(s string) (*MasterKey, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	defer zero(raw)
	return NewMasterKey(raw)
}

// Bytes returns a copy of the key material. The caller owns the copy and
// should zero it after use.
func (k *MasterKey) Bytes() []byte {
	if !k.Usable() {
		return nil
	}
	out := make([]byte, MasterKeySize)
	copy(out, k.b)
	return out
}

// Base64 returns the key in standard base64, the encoding used inside the
// secure storage record.
func (k *MasterKey) Base64() string {
	if !k.Usable() {
		return ""
	}
	return base64.StdEncoding.EncodeToString(k.b)
}

// Clone returns an independent copy of k, or nil if k is not usable.
func (k *MasterKey) Clone() *MasterKey {
	if !k.Usable() {
		return nil
	}
	c, _ := NewMasterKey(k.b)
	return c
}

// Equal compares two keys in constant time. Unusable keys are never equal.
func (k *MasterKey) Equal(other *MasterKey) bool {
	if !k.Usable() || !other.Usable() {
		return false
	}
	return subtle.ConstantTimeCompare(k.b, other.b) == 1
}

// Usable reports whether k holds key material that has not been wiped.
func (k *MasterKey) Usable() bool {
	return k != nil && !k.wiped && len(k.b) == MasterKeySize
}

// Wipe zeroes the key material. It is safe to call more than once.
func (k *MasterKey) Wipe() {
	if k == nil {
		return
	}
	zero(k.b)
	k.wiped = true
}

func (k MasterKey) String() string { return redacted }

func (k MasterKey) GoString() string { return "crypto.MasterKey{" + redacted + "}" }

// MarshalJSON never serializes key material.
func (k MasterKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
