// Package crypto holds the client-side cryptographic primitives of the vault:
// Argon2id derivation of the master key ([KeyDeriver]) and authenticated
// per-field AES-256-GCM encryption ([FieldCipher]).
//
// Nothing in this package performs I/O, keeps state between calls or logs.
// The server only ever sees the output of [FieldCipher.Encrypt]; the master
// key itself never leaves client memory except through the secure key vault.
package crypto
