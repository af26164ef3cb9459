package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/utils"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

type authService struct {
	Deps
	profiles *profiles
	ids      *utils.UUIDGenerator
}

func newAuthService(deps Deps, p *profiles, ids *utils.UUIDGenerator) *authService {
	return &authService{Deps: deps, profiles: p, ids: ids}
}

func (a *authService) SignIn(ctx context.Context, creds models.Credentials, remember bool) (LoginResult, error) {
	ctx, log := operation(ctx, a.ids, a.Logger)

	if err := a.Validator.Validate(ctx, creds); err != nil {
		return LoginResult{}, err
	}

	user, err := a.Adapter.Login(ctx, creds)
	if err != nil {
		log.Err(err).Str("func", "authService.SignIn").Str("login", creds.Login).Msg("server login failed")
		return LoginResult{}, mapLoginError(err)
	}

	return a.Login(ctx, LoginRequest{
		Password: creds.Password,
		UserID:   user.ID,
		Login:    user.Login,
		Pepper:   user.SystemPepper,
		Token:    user.Token,
	}, remember)
}

func (a *authService) Login(ctx context.Context, req LoginRequest, remember bool) (LoginResult, error) {
	ctx, log := operation(ctx, a.ids, a.Logger)
	if err := ctx.Err(); err != nil {
		return LoginResult{}, err
	}

	res := <-crypto.DeriveAsync(ctx, a.Deriver, req.Password, req.UserID, req.Pepper)
	if res.Err != nil {
		log.Err(res.Err).Str("func", "authService.Login").Str("user_id", req.UserID).Msg("key derivation failed")
		return LoginResult{}, fmt.Errorf("%w: %w", ErrLoginFailed, res.Err)
	}
	key := res.Key
	defer key.Wipe()

	if err := a.Session.Set(key); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	a.Adapter.SetToken(req.Token)

	var result LoginResult
	if remember {
		if err := a.Vault.Store(ctx, key, req.Pepper); err != nil {
			log.Warn().Err(err).Str("func", "authService.Login").Str("user_id", req.UserID).
				Msg("key kept in memory only")
			result.RememberErr = err
		} else {
			result.Remembered = true
		}
	}

	profile := Profile{
		UserID:     req.UserID,
		Login:      req.Login,
		Pepper:     req.Pepper,
		Token:      req.Token,
		Remembered: result.Remembered,
	}
	if err := a.profiles.Save(ctx, profile); err != nil {
		log.Warn().Err(err).Str("func", "authService.Login").Str("user_id", req.UserID).
			Msg("profile not persisted, unlock will need the password")
	}

	log.Info().Str("func", "authService.Login").Str("user_id", req.UserID).
		Bool("remembered", result.Remembered).Msg("session opened")
	return result, nil
}

func (a *authService) Unlock(ctx context.Context) error {
	ctx, log := operation(ctx, a.ids, a.Logger)

	profile, err := a.profiles.Load(ctx)
	if err != nil {
		return err
	}

	secrets, ok := a.Vault.Retrieve(ctx)
	if !ok {
		return ErrUnlockUnavailable
	}
	defer secrets.MasterKey.Wipe()

	if err = a.Session.Set(secrets.MasterKey); err != nil {
		return fmt.Errorf("%w: %w", ErrUnlockUnavailable, err)
	}
	profile.Pepper = secrets.SystemPepper
	a.Adapter.SetToken(profile.Token)
	a.profiles.setCurrent(profile)

	log.Info().Str("func", "authService.Unlock").Str("user_id", profile.UserID).Msg("session unlocked")
	return nil
}

func (a *authService) Logout(ctx context.Context, forget bool) error {
	ctx, log := operation(ctx, a.ids, a.Logger)

	profile, loadErr := a.profiles.Load(ctx)

	a.Session.Clear()
	a.Adapter.SetToken("")
	a.profiles.clearCurrent()

	if !forget {
		log.Info().Str("func", "authService.Logout").Msg("session locked")
		return nil
	}

	var errs []error
	if err := a.Vault.Forget(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.profiles.Delete(ctx); err != nil {
		errs = append(errs, err)
	}
	if loadErr == nil {
		if err := a.Cache.DeleteCredentials(ctx, profile.UserID); err != nil {
			errs = append(errs, err)
		}
	}

	log.Info().Str("func", "authService.Logout").Str("user_id", profile.UserID).Msg("device forgotten")
	return errors.Join(errs...)
}

func (a *authService) Current() (Profile, bool) {
	return a.profiles.Current()
}
