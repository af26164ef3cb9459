package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/session"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/store"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/utils"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// Placeholder is shown instead of a field that could not be decrypted, so a
// wrong key or corrupted data is never confused with an empty value.
const Placeholder = "⚠ unavailable"

type credentialService struct {
	Deps
	profiles *profiles
	ids      *utils.UUIDGenerator
}

func newCredentialService(deps Deps, p *profiles, ids *utils.UUIDGenerator) *credentialService {
	return &credentialService{Deps: deps, profiles: p, ids: ids}
}

// currentKey fetches a fresh copy of the session key; the caller wipes it.
func currentKey(s *session.Store) (*crypto.MasterKey, error) {
	key, err := s.Get()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionLocked, err)
	}
	return key, nil
}

func (c *credentialService) EncryptRecord(plain models.Credential) (models.CredentialRecord, error) {
	key, err := currentKey(c.Session)
	if err != nil {
		return models.CredentialRecord{}, err
	}
	defer key.Wipe()

	if plain.ID == "" {
		plain.ID = c.ids.Generate()
	}
	record := models.CredentialRecord{ID: plain.ID, CategoryID: plain.CategoryID}

	required := []struct {
		name  string
		value string
		dst   *models.CipheredField
	}{
		{models.FieldTitle, plain.Title, &record.Title},
		{models.FieldUsername, plain.Username, &record.Username},
		{models.FieldSecret, plain.Secret, &record.Secret},
	}
	for _, f := range required {
		if *f.dst, err = c.Cipher.Encrypt(f.value, key); err != nil {
			return models.CredentialRecord{}, fmt.Errorf("encrypt %s: %w", f.name, err)
		}
	}

	if record.URL, err = c.Cipher.EncryptOptional(plain.URL, key); err != nil {
		return models.CredentialRecord{}, fmt.Errorf("encrypt %s: %w", models.FieldURL, err)
	}
	if record.Notes, err = c.Cipher.EncryptOptional(plain.Notes, key); err != nil {
		return models.CredentialRecord{}, fmt.Errorf("encrypt %s: %w", models.FieldNotes, err)
	}

	return record, nil
}

func (c *credentialService) DecryptRecord(record models.CredentialRecord) (DecryptedCredential, error) {
	key, err := currentKey(c.Session)
	if err != nil {
		return DecryptedCredential{}, err
	}
	defer key.Wipe()

	out := DecryptedCredential{Credential: models.Credential{ID: record.ID, CategoryID: record.CategoryID}}

	fields := []struct {
		name     string
		value    models.CipheredField
		dst      *string
		optional bool
	}{
		{models.FieldTitle, record.Title, &out.Title, false},
		{models.FieldUsername, record.Username, &out.Username, false},
		{models.FieldSecret, record.Secret, &out.Secret, false},
		{models.FieldURL, record.URL, &out.URL, true},
		{models.FieldNotes, record.Notes, &out.Notes, true},
	}
	for _, f := range fields {
		var plain string
		if f.optional {
			plain, err = c.Cipher.DecryptOptional(f.value, key)
		} else {
			plain, err = c.Cipher.Decrypt(f.value, key)
		}
		switch {
		case err == nil:
			*f.dst = plain
		case crypto.IsDecryptFailure(err):
			*f.dst = Placeholder
			out.Unavailable = append(out.Unavailable, f.name)
		default:
			return DecryptedCredential{}, fmt.Errorf("decrypt %s: %w", f.name, err)
		}
	}

	if len(out.Unavailable) > 0 {
		c.Logger.Warn().Str("func", "credentialService.DecryptRecord").Str("record_id", record.ID).
			Strs("fields", out.Unavailable).Msg("fields could not be decrypted")
	}
	return out, nil
}

func (c *credentialService) Create(ctx context.Context, plain models.Credential) (models.Credential, error) {
	ctx, log := operation(ctx, c.ids, c.Logger)

	profile, err := c.profiles.Load(ctx)
	if err != nil {
		return models.Credential{}, err
	}
	if err = c.Validator.Validate(ctx, plain); err != nil {
		return models.Credential{}, err
	}

	plain.ID = ""
	record, err := c.EncryptRecord(plain)
	if err != nil {
		return models.Credential{}, err
	}

	if err = c.Adapter.SaveCredential(ctx, record); err != nil {
		log.Err(err).Str("func", "credentialService.Create").Str("record_id", record.ID).Msg("upload failed")
		return models.Credential{}, mapAdapterError(err)
	}
	if err = c.Cache.SaveCredential(ctx, profile.UserID, record); err != nil {
		log.Warn().Err(err).Str("func", "credentialService.Create").Str("record_id", record.ID).Msg("local cache not updated")
	}

	plain.ID = record.ID
	return plain, nil
}

func (c *credentialService) Update(ctx context.Context, plain models.Credential) error {
	ctx, log := operation(ctx, c.ids, c.Logger)

	if plain.ID == "" {
		return ErrMissingRecordID
	}
	profile, err := c.profiles.Load(ctx)
	if err != nil {
		return err
	}
	if err = c.Validator.Validate(ctx, plain); err != nil {
		return err
	}

	record, err := c.EncryptRecord(plain)
	if err != nil {
		return err
	}

	if err = c.Adapter.UpdateCredential(ctx, record); err != nil {
		log.Err(err).Str("func", "credentialService.Update").Str("record_id", record.ID).Msg("upload failed")
		return mapAdapterError(err)
	}
	if err = c.Cache.SaveCredential(ctx, profile.UserID, record); err != nil {
		log.Warn().Err(err).Str("func", "credentialService.Update").Str("record_id", record.ID).Msg("local cache not updated")
	}
	return nil
}

func (c *credentialService) Delete(ctx context.Context, id string) error {
	ctx, log := operation(ctx, c.ids, c.Logger)

	if id == "" {
		return ErrMissingRecordID
	}
	profile, err := c.profiles.Load(ctx)
	if err != nil {
		return err
	}

	if err = c.Adapter.DeleteCredential(ctx, id); err != nil {
		log.Err(err).Str("func", "credentialService.Delete").Str("record_id", id).Msg("server delete failed")
		return mapAdapterError(err)
	}
	if err = c.Cache.DeleteCredential(ctx, profile.UserID, id); err != nil && !errors.Is(err, store.ErrCredentialNotFound) {
		log.Warn().Err(err).Str("func", "credentialService.Delete").Str("record_id", id).Msg("local cache not updated")
	}
	return nil
}

func (c *credentialService) Get(ctx context.Context, id string) (DecryptedCredential, error) {
	ctx, log := operation(ctx, c.ids, c.Logger)

	profile, err := c.profiles.Load(ctx)
	if err != nil {
		return DecryptedCredential{}, err
	}

	record, err := c.Cache.GetCredential(ctx, profile.UserID, id)
	if errors.Is(err, store.ErrCredentialNotFound) {
		record, err = c.Adapter.GetCredential(ctx, id)
		if err != nil {
			return DecryptedCredential{}, mapAdapterError(err)
		}
		if cacheErr := c.Cache.SaveCredential(ctx, profile.UserID, record); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("func", "credentialService.Get").Str("record_id", id).Msg("local cache not updated")
		}
	} else if err != nil {
		return DecryptedCredential{}, err
	}

	return c.DecryptRecord(record)
}

func (c *credentialService) List(ctx context.Context) ([]DecryptedCredential, error) {
	ctx, log := operation(ctx, c.ids, c.Logger)

	profile, err := c.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}

	records, err := c.Adapter.ListCredentials(ctx)
	switch {
	case err == nil:
		if cacheErr := c.Cache.ReplaceCredentials(ctx, profile.UserID, records); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("func", "credentialService.List").Msg("local cache not refreshed")
		}
	case errors.Is(mapAdapterError(err), ErrSessionExpired):
		return nil, mapAdapterError(err)
	default:
		log.Warn().Err(err).Str("func", "credentialService.List").Msg("server unreachable, using local cache")
		if records, err = c.Cache.ListCredentials(ctx, profile.UserID); err != nil {
			return nil, err
		}
	}

	out := make([]DecryptedCredential, 0, len(records))
	for _, record := range records {
		cred, err := c.DecryptRecord(record)
		if err != nil {
			return nil, err
		}
		out = append(out, cred)
	}
	return out, nil
}
