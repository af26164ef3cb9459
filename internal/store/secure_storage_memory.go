package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/device"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

type memoryItem struct {
	value  []byte
	policy models.AccessPolicy
}

// MemorySecureStorage is a process-local secure storage honoring the access
// policy. It backs sessions that must not touch the disk and the tests of
// its callers.
type MemorySecureStorage struct {
	mu    sync.Mutex
	items map[string]memoryItem
	auth  device.Authenticator
}

// NewMemorySecureStorage returns an empty storage gated by auth.
func NewMemorySecureStorage(auth device.Authenticator) *MemorySecureStorage {
	return &MemorySecureStorage{items: make(map[string]memoryItem), auth: auth}
}

// SetItem stores a copy of value. Items restricted to secured devices are
// refused with device.ErrNotEnrolled when no credential is enrolled.
func (m *MemorySecureStorage) SetItem(_ context.Context, name string, value []byte, policy models.AccessPolicy) error {
	if policy.WhenPasscodeSetThisDeviceOnly && !m.auth.IsEnrolled() {
		return device.ErrNotEnrolled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.items[name]; ok {
		clear(old.value)
	}
	m.items[name] = memoryItem{value: append([]byte(nil), value...), policy: policy}
	return nil
}

// GetItem returns a copy of the stored value, prompting first when the item
// requires authentication.
func (m *MemorySecureStorage) GetItem(ctx context.Context, name, prompt string) ([]byte, error) {
	m.mu.Lock()
	item, ok := m.items[name]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSecureItemNotFound
	}

	if item.policy.WhenPasscodeSetThisDeviceOnly && !m.auth.IsEnrolled() {
		return nil, device.ErrNotEnrolled
	}
	if item.policy.RequireAuthentication {
		if err := m.auth.Authenticate(ctx, prompt); err != nil {
			return nil, err
		}
	}

	return append([]byte(nil), item.value...), nil
}

// DeleteItem removes name; a missing item is not an error.
func (m *MemorySecureStorage) DeleteItem(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item, ok := m.items[name]; ok {
		clear(item.value)
		delete(m.items, name)
	}
	return nil
}
