// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the master key of the running session.
//
// [Store] is the only place a "current" key lives during normal use. It is
// an explicit value handed to every caller that needs the key, so several
// independent sessions can coexist (tests run them side by side). The key is
// kept sealed in a memguard enclave and is never persisted or serialized.
package session

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
)

// ErrNoKey is returned by [Store.Get] when the session is locked.
var ErrNoKey = errors.New("session: no master key, session is locked")

// Store is a process-lifetime holder of the current master key.
//
// Writers (login, unlock, rotation commit, logout) replace the key as a whole;
// readers must call Get for every operation instead of caching the result so
// that a key replaced mid-session is observed by all later calls.
type Store struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
	onClear []func()

	logger *logger.Logger
}

// NewStore returns a locked session store.
func NewStore(log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{logger: log}
}

// Set replaces the current key with a copy of key. The copy is sealed into a
// fresh enclave; the previous enclave is dropped. The caller keeps ownership
// of key. Returns crypto.ErrMissingKey for a nil or wiped key.
func (s *Store) Set(key *crypto.MasterKey) error {
	raw := key.Bytes()
	if raw == nil {
		return crypto.ErrMissingKey
	}

	// NewEnclave wipes raw once sealed.
	enclave := memguard.NewEnclave(raw)

	s.mu.Lock()
	s.enclave = enclave
	s.mu.Unlock()

	s.logger.Debug().Str("func", "session.Set").Msg("session master key replaced")
	return nil
}

// Get returns a fresh copy of the current key. The caller should Wipe it once
// the operation that needed it is done.
func (s *Store) Get() (*crypto.MasterKey, error) {
	s.mu.RLock()
	enclave := s.enclave
	s.mu.RUnlock()

	if enclave == nil {
		return nil, ErrNoKey
	}

	buf, err := enclave.Open()
	if err != nil {
		s.logger.Err(err).Str("func", "session.Get").Msg("failed to open session enclave")
		return nil, ErrNoKey
	}
	defer buf.Destroy()

	return crypto.NewMasterKey(buf.Bytes())
}

// IsUnlocked reports whether a key is currently held.
func (s *Store) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enclave != nil
}

// Clear drops the current key and runs the registered OnClear hooks. It must
// be called on logout, account destruction and whenever the session stops
// being trusted. Clearing a locked store is a no-op apart from the hooks.
func (s *Store) Clear() {
	s.mu.Lock()
	s.enclave = nil
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	s.logger.Debug().Str("func", "session.Clear").Msg("session master key cleared")
}

// OnClear registers fn to run after every Clear.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}
