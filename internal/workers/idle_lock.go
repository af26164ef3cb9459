// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/session"
)

// IdleLock clears the session key after a period without user activity.
// A later unlock goes through device authentication again.
type IdleLock struct {
	session *session.Store
	timeout time.Duration
	tick    time.Duration
	now     func() time.Time

	mu           sync.Mutex
	lastActivity time.Time

	logger *logger.Logger
}

// NewIdleLock returns a worker that locks s after timeout of inactivity.
// A non-positive timeout disables locking.
func NewIdleLock(s *session.Store, timeout time.Duration, log *logger.Logger) *IdleLock {
	if log == nil {
		log = logger.Nop()
	}

	tick := timeout / 4
	if tick > time.Second {
		tick = time.Second
	}

	l := &IdleLock{session: s, timeout: timeout, tick: tick, now: time.Now, logger: log}
	l.lastActivity = l.now()
	return l
}

// Touch records user activity.
func (l *IdleLock) Touch() {
	l.mu.Lock()
	l.lastActivity = l.now()
	l.mu.Unlock()
}

func (l *IdleLock) Run(ctx context.Context) {
	if l.timeout <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(l.tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.check()
			}
		}
	}()
}

// check locks the session when it has been idle for at least the timeout.
func (l *IdleLock) check() bool {
	if !l.session.IsUnlocked() {
		return false
	}

	l.mu.Lock()
	idle := l.now().Sub(l.lastActivity)
	l.mu.Unlock()

	if idle < l.timeout {
		return false
	}

	l.session.Clear()
	l.logger.Info().Str("func", "IdleLock.check").Dur("idle", idle).Msg("session locked after inactivity")
	return true
}
