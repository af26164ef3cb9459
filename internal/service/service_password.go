// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/utils"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

type passwordService struct {
	Deps
	profiles *profiles
	ids      *utils.UUIDGenerator
}

func newPasswordService(deps Deps, p *profiles, ids *utils.UUIDGenerator) *passwordService {
	return &passwordService{Deps: deps, profiles: p, ids: ids}
}

// ChangeMasterPassword implements [PasswordService].
//
// Order of events:
//  1. validate the form and check the current password against the session key;
//  2. fetch every record from the server and rotate them on a background run;
//  3. submit the re-encrypted records with the password change;
//  4. only then commit the new key to the session, secure storage and cache.
//
// A failure before step 4 leaves the old key authoritative and discards the
// run's output.
func (p *passwordService) ChangeMasterPassword(ctx context.Context, req models.ChangePasswordRequest, onProgress rotation.ProgressFunc) (ChangePasswordResult, error) {
	ctx, log := operation(ctx, p.ids, p.Logger)

	if err := p.Validator.Validate(ctx, req); err != nil {
		return ChangePasswordResult{}, err
	}

	profile, err := p.profiles.Load(ctx)
	if err != nil {
		return ChangePasswordResult{}, err
	}

	oldKey, err := currentKey(p.Session)
	if err != nil {
		return ChangePasswordResult{}, err
	}
	defer oldKey.Wipe()

	if err = p.verifyCurrentPassword(ctx, req.CurrentPassword, profile, oldKey); err != nil {
		return ChangePasswordResult{}, err
	}

	records, err := p.Adapter.ListCredentials(ctx)
	if err != nil {
		log.Err(err).Str("func", "passwordService.ChangeMasterPassword").Msg("could not fetch records")
		return ChangePasswordResult{}, mapAdapterError(err)
	}

	run := p.Pipeline.Start(ctx, rotation.Request{
		Records:     records,
		OldKey:      oldKey,
		NewPassword: req.NewPassword,
		UserID:      profile.UserID,
		Pepper:      profile.Pepper,
	})
	for percent := range run.Progress() {
		if onProgress != nil {
			onProgress(percent)
		}
	}
	res, err := run.Wait()
	if err != nil {
		return ChangePasswordResult{}, err
	}
	defer res.NewKey.Wipe()

	err = p.Adapter.ResetMasterPassword(ctx, models.ResetMasterPasswordRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Items:           res.Records,
	})
	if err != nil {
		log.Err(err).Str("func", "passwordService.ChangeMasterPassword").Str("user_id", profile.UserID).
			Msg("server refused the change, old key stays in use")
		return ChangePasswordResult{}, fmt.Errorf("%w: %w", ErrPasswordChangeRejected, mapAdapterError(err))
	}

	return p.commit(ctx, profile, res), nil
}

func (p *passwordService) verifyCurrentPassword(ctx context.Context, password string, profile Profile, sessionKey *crypto.MasterKey) error {
	res := <-crypto.DeriveAsync(ctx, p.Deriver, password, profile.UserID, profile.Pepper)
	if res.Err != nil {
		return res.Err
	}
	defer res.Key.Wipe()

	if !res.Key.Equal(sessionKey) {
		return ErrWrongPassword
	}
	return nil
}

// commit installs the new key everywhere. The server already holds the new
// records, so local failures are logged and never undo the change.
func (p *passwordService) commit(ctx context.Context, profile Profile, res rotation.Result) ChangePasswordResult {
	log := logger.FromContext(ctx)
	result := ChangePasswordResult{Records: len(res.Records), ReloginRequired: true}

	if err := p.Session.Set(res.NewKey); err != nil {
		log.Err(err).Str("func", "passwordService.commit").Msg("session key not replaced")
	}

	if profile.Remembered {
		if err := p.Vault.Store(ctx, res.NewKey, profile.Pepper); err != nil {
			// a stale key in secure storage would unlock nothing
			log.Warn().Err(err).Str("func", "passwordService.commit").Msg("secure storage not updated, forgetting the old key")
			if forgetErr := p.Vault.Forget(ctx); forgetErr != nil {
				log.Err(forgetErr).Str("func", "passwordService.commit").Msg("old key could not be removed")
			}
			profile.Remembered = false
			if saveErr := p.profiles.Save(ctx, profile); saveErr != nil {
				log.Warn().Err(saveErr).Str("func", "passwordService.commit").Msg("profile not updated")
			}
		} else {
			result.VaultUpdated = true
		}
	}

	if err := p.Cache.ReplaceCredentials(ctx, profile.UserID, res.Records); err != nil {
		log.Warn().Err(err).Str("func", "passwordService.commit").Msg("local cache not refreshed")
	}

	log.Info().Str("func", "passwordService.commit").Str("user_id", profile.UserID).
		Int("records", result.Records).Msg("master password changed")
	return result
}
