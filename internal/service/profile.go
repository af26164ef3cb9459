package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/store"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/vault"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// ProfileItemName is the secure storage item holding the account profile.
const ProfileItemName = "user_session_profile"

// Profile is the account a session belongs to. It is kept next to the vault
// record so that an unlock in a new process knows whose records to open.
type Profile struct {
	UserID     string `json:"userId"`
	Login      string `json:"login"`
	Pepper     string `json:"systemPepper"`
	Token      string `json:"token"`
	Remembered bool   `json:"remembered"`
}

// profiles keeps the current profile in memory and persists it in secure
// storage without a prompt. The storage still seals it at rest.
type profiles struct {
	storage vault.SecureStorage

	mu      sync.RWMutex
	current *Profile
}

func newProfiles(storage vault.SecureStorage) *profiles {
	return &profiles{storage: storage}
}

func (p *profiles) Current() (Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return Profile{}, false
	}
	return *p.current, true
}

func (p *profiles) setCurrent(profile Profile) {
	p.mu.Lock()
	p.current = &profile
	p.mu.Unlock()
}

func (p *profiles) clearCurrent() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
}

// Save persists profile and makes it current.
func (p *profiles) Save(ctx context.Context, profile Profile) error {
	p.setCurrent(profile)

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	defer clear(payload)

	if err = p.storage.SetItem(ctx, ProfileItemName, payload, models.AccessPolicy{}); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Load returns the current profile or reads the persisted one.
func (p *profiles) Load(ctx context.Context) (Profile, error) {
	if profile, ok := p.Current(); ok {
		return profile, nil
	}

	payload, err := p.storage.GetItem(ctx, ProfileItemName, "")
	if errors.Is(err, store.ErrSecureItemNotFound) {
		return Profile{}, ErrNotLoggedIn
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	defer clear(payload)

	var profile Profile
	if err = json.Unmarshal(payload, &profile); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if profile.UserID == "" {
		return Profile{}, ErrNotLoggedIn
	}
	return profile, nil
}

func (p *profiles) Delete(ctx context.Context) error {
	p.clearCurrent()
	return p.storage.DeleteItem(ctx, ProfileItemName)
}
