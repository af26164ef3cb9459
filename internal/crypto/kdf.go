// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/sha256"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/argon2"
)

const instrumentationName = "github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"

// minSaltLength is the shortest salt fed to Argon2id as is. Shorter salts are
// replaced by their SHA-256 digest.
const minSaltLength = 8

// KDFParams are the Argon2id cost parameters. They must be identical for the
// first derivation and every later re-derivation of the same key, otherwise the
// computed keys silently differ and nothing decrypts any more. Any change must
// therefore come with a new Version.
type KDFParams struct {
	Version uint8
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// KDFParamsV1 is the canonical parameter set of the deployment:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 1 lane
//   - key length:  32 bytes (256 bits)
var KDFParamsV1 = KDFParams{
	Version: 1,
	Time:    3,
	Memory:  64 * 1024,
	Threads: 1,
	KeyLen:  MasterKeySize,
}

// Validate rejects parameter sets Argon2id cannot run with or that do not
// produce a master-key-sized output.
func (p KDFParams) Validate() error {
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return fmt.Errorf("%w: zero cost (time=%d memory=%d threads=%d)", ErrInvalidKDFParams, p.Time, p.Memory, p.Threads)
	}
	if p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("%w: memory %d KiB is below 8*threads", ErrInvalidKDFParams, p.Memory)
	}
	if p.KeyLen != MasterKeySize {
		return fmt.Errorf("%w: key length %d", ErrInvalidKDFParams, p.KeyLen)
	}
	return nil
}

// keyDeriver is the private implementation of [KeyDeriver].
type keyDeriver struct {
	params KDFParams
}

// NewKeyDeriver constructs a [KeyDeriver] pinned to [KDFParamsV1].
func NewKeyDeriver() KeyDeriver {
	return &keyDeriver{params: KDFParamsV1}
}

// NewKeyDeriverWithParams constructs a [KeyDeriver] with explicit cost
// parameters. It exists for tests and for deployments that migrated to a newer
// parameter version; it returns ErrInvalidKDFParams for unusable parameters.
func NewKeyDeriverWithParams(params KDFParams) (KeyDeriver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &keyDeriver{params: params}, nil
}

// Params implements [KeyDeriver].
func (k *keyDeriver) Params() KDFParams {
	return k.params
}

// Derive implements [KeyDeriver]. The Argon2id engine panics on parameters it
// cannot honour; such a panic is turned into an error wrapping ErrDerivation.
func (k *keyDeriver) Derive(password, userID, pepper string) (key *MasterKey, err error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	defer func() {
		if r := recover(); r != nil {
			key = nil
			err = fmt.Errorf("%w: %v", ErrDerivation, r)
		}
	}()

	salt := BuildSalt(userID, pepper)
	pw := []byte(password)
	raw := argon2.IDKey(pw, salt, k.params.Time, k.params.Memory, k.params.Threads, k.params.KeyLen)
	defer zero(raw)
	zero(pw)

	key, err = NewMasterKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	return key, nil
}

// BuildSalt returns the salt bytes for a user: userID + ":" + pepper, or the
// SHA-256 digest of that string when it is shorter than 8 bytes.
func BuildSalt(userID, pepper string) []byte {
	salt := []byte(userID + ":" + pepper)
	if len(salt) < minSaltLength {
		sum := sha256.Sum256(salt)
		return sum[:]
	}
	return salt
}

// DeriveResult is the outcome of an asynchronous derivation.
type DeriveResult struct {
	Key *MasterKey
	Err error
}

// DeriveAsync runs d.Derive on its own goroutine and delivers the result on
// the returned channel, which receives exactly one value and is then closed.
// If ctx is done first the result carries ctx.Err() and the key, once
// computed, is wiped.
func DeriveAsync(ctx context.Context, d KeyDeriver, password, userID, pepper string) <-chan DeriveResult {
	params := d.Params()
	_, span := otel.Tracer(instrumentationName).Start(ctx, "crypto.Derive", trace.WithAttributes(
		attribute.Int("kdf.version", int(params.Version)),
		attribute.Int64("kdf.memory_kib", int64(params.Memory)),
		attribute.Int64("kdf.time", int64(params.Time)),
	))

	out := make(chan DeriveResult, 1)
	done := make(chan DeriveResult, 1)

	go func() {
		key, err := d.Derive(password, userID, pepper)
		done <- DeriveResult{Key: key, Err: err}
	}()

	go func() {
		defer close(out)
		defer span.End()
		select {
		case res := <-done:
			if res.Err != nil {
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, "derivation failed")
			}
			out <- res
		case <-ctx.Done():
			span.SetStatus(codes.Error, "cancelled")
			out <- DeriveResult{Err: ctx.Err()}
			if res := <-done; res.Key != nil {
				res.Key.Wipe()
			}
		}
	}()

	return out
}
