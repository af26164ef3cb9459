package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/store"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/validators"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

func TestEncryptDecryptRecord_RoundTrip(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	rec, err := f.svc.Credentials.EncryptRecord(bank)
	require.NoError(t, err)

	assert.Equal(t, bank.ID, rec.ID)
	assert.Equal(t, bank.CategoryID, rec.CategoryID, "category stays in clear")
	assert.NotContains(t, string(rec.Secret), bank.Secret)
	assert.True(t, rec.Notes.IsEmpty(), "empty optional field stays empty")

	got, err := f.svc.Credentials.DecryptRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, bank, got.Credential)
	assert.Empty(t, got.Unavailable)
}

func TestEncryptRecord_AssignsID(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	plain := bank
	plain.ID = ""
	rec, err := f.svc.Credentials.EncryptRecord(plain)

	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
}

func TestDecryptRecord_Placeholder(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	rec, err := f.svc.Credentials.EncryptRecord(bank)
	require.NoError(t, err)
	other := f.sealed(t, f.derive(t, "another password"), bank)
	rec.Secret = other.Secret
	rec.URL = "zz:zz:zz"

	got, err := f.svc.Credentials.DecryptRecord(rec)

	require.NoError(t, err)
	assert.Equal(t, bank.Title, got.Title)
	assert.Equal(t, Placeholder, got.Secret)
	assert.Equal(t, Placeholder, got.URL)
	assert.Equal(t, []string{models.FieldSecret, models.FieldURL}, got.Unavailable)
}

func TestEncryptDecryptRecord_Locked(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.Credentials.EncryptRecord(bank)
	assert.ErrorIs(t, err, ErrSessionLocked)

	_, err = f.svc.Credentials.DecryptRecord(models.CredentialRecord{})
	assert.ErrorIs(t, err, ErrSessionLocked)
}

func TestEncryptRecord_UsesLatestSessionKey(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	newKey := f.derive(t, "rotated password")
	require.NoError(t, f.session.Set(newKey))

	rec, err := f.svc.Credentials.EncryptRecord(bank)
	require.NoError(t, err)

	title, err := f.cipher.Decrypt(rec.Title, newKey)
	require.NoError(t, err)
	assert.Equal(t, bank.Title, title)
}

func TestCredentialService_Create(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	var uploaded models.CredentialRecord
	gomock.InOrder(
		f.adapter.EXPECT().SaveCredential(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec models.CredentialRecord) error {
				uploaded = rec
				return nil
			}),
		f.cache.EXPECT().SaveCredential(gomock.Any(), testUserID, gomock.Any()).Return(errors.New("disk full")),
	)

	created, err := f.svc.Credentials.Create(context.Background(), bank)

	require.NoError(t, err, "cache failure is not fatal")
	assert.NotEqual(t, bank.ID, created.ID, "server records get a fresh id")
	assert.Equal(t, uploaded.ID, created.ID)

	secret, err := f.cipher.Decrypt(uploaded.Secret, f.sessionKey(t))
	require.NoError(t, err)
	assert.Equal(t, bank.Secret, secret)
}

func TestCredentialService_Create_Errors(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.svc.Credentials.Create(context.Background(), bank)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("invalid credential", func(t *testing.T) {
		f := newFixture(t, true)
		f.login(t, false)
		plain := bank
		plain.Secret = ""
		_, err := f.svc.Credentials.Create(context.Background(), plain)
		assert.ErrorIs(t, err, validators.ErrInvalidCredential)
	})

	t.Run("token expired", func(t *testing.T) {
		f := newFixture(t, true)
		f.login(t, false)
		f.adapter.EXPECT().SaveCredential(gomock.Any(), gomock.Any()).Return(adapter.ErrTokenExpired)
		_, err := f.svc.Credentials.Create(context.Background(), bank)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestCredentialService_Update(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	assert.ErrorIs(t, f.svc.Credentials.Update(context.Background(), models.Credential{Title: "x"}), ErrMissingRecordID)

	f.adapter.EXPECT().UpdateCredential(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.CredentialRecord) error {
			assert.Equal(t, bank.ID, rec.ID)
			return nil
		})
	f.cache.EXPECT().SaveCredential(gomock.Any(), testUserID, gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Credentials.Update(context.Background(), bank))
}

func TestCredentialService_Delete(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	f.adapter.EXPECT().DeleteCredential(gomock.Any(), bank.ID).Return(nil)
	f.cache.EXPECT().DeleteCredential(gomock.Any(), testUserID, bank.ID).Return(store.ErrCredentialNotFound)

	assert.NoError(t, f.svc.Credentials.Delete(context.Background(), bank.ID))
	assert.ErrorIs(t, f.svc.Credentials.Delete(context.Background(), ""), ErrMissingRecordID)
}

func TestCredentialService_Delete_ServerError(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	f.adapter.EXPECT().DeleteCredential(gomock.Any(), bank.ID).Return(adapter.ErrNotFound)

	assert.ErrorIs(t, f.svc.Credentials.Delete(context.Background(), bank.ID), adapter.ErrNotFound)
}

func TestCredentialService_Get(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)
	rec := f.sealed(t, f.sessionKey(t), bank)

	t.Run("cache hit", func(t *testing.T) {
		f.cache.EXPECT().GetCredential(gomock.Any(), testUserID, bank.ID).Return(rec, nil)

		got, err := f.svc.Credentials.Get(context.Background(), bank.ID)
		require.NoError(t, err)
		assert.Equal(t, bank, got.Credential)
	})

	t.Run("cache miss", func(t *testing.T) {
		gomock.InOrder(
			f.cache.EXPECT().GetCredential(gomock.Any(), testUserID, bank.ID).Return(models.CredentialRecord{}, store.ErrCredentialNotFound),
			f.adapter.EXPECT().GetCredential(gomock.Any(), bank.ID).Return(rec, nil),
			f.cache.EXPECT().SaveCredential(gomock.Any(), testUserID, rec).Return(nil),
		)

		got, err := f.svc.Credentials.Get(context.Background(), bank.ID)
		require.NoError(t, err)
		assert.Equal(t, bank, got.Credential)
	})

	t.Run("cache failure", func(t *testing.T) {
		boom := errors.New("database is locked")
		f.cache.EXPECT().GetCredential(gomock.Any(), testUserID, bank.ID).Return(models.CredentialRecord{}, boom)

		_, err := f.svc.Credentials.Get(context.Background(), bank.ID)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCredentialService_List(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)
	key := f.sessionKey(t)

	mail := models.Credential{ID: "rec-2", Title: "Mail", Username: "alice", Secret: "s3cret", Notes: "2fa on"}
	records := []models.CredentialRecord{f.sealed(t, key, bank), f.sealed(t, key, mail)}

	t.Run("online", func(t *testing.T) {
		gomock.InOrder(
			f.adapter.EXPECT().ListCredentials(gomock.Any()).Return(records, nil),
			f.cache.EXPECT().ReplaceCredentials(gomock.Any(), testUserID, records).Return(nil),
		)

		got, err := f.svc.Credentials.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, bank, got[0].Credential)
		assert.Equal(t, mail, got[1].Credential)
	})

	t.Run("offline falls back to cache", func(t *testing.T) {
		gomock.InOrder(
			f.adapter.EXPECT().ListCredentials(gomock.Any()).Return(nil, errors.New("connection refused")),
			f.cache.EXPECT().ListCredentials(gomock.Any(), testUserID).Return(records[:1], nil),
		)

		got, err := f.svc.Credentials.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, bank, got[0].Credential)
	})

	t.Run("expired session is not hidden by the cache", func(t *testing.T) {
		f.adapter.EXPECT().ListCredentials(gomock.Any()).Return(nil, adapter.ErrTokenExpired)

		_, err := f.svc.Credentials.List(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("locked session", func(t *testing.T) {
		f.session.Clear()
		f.adapter.EXPECT().ListCredentials(gomock.Any()).Return(records, nil)
		f.cache.EXPECT().ReplaceCredentials(gomock.Any(), testUserID, records).Return(nil)

		_, err := f.svc.Credentials.List(context.Background())
		assert.ErrorIs(t, err, ErrSessionLocked)
	})
}

func TestDecryptRecord_WrongKeyNeverLeaksPlaintext(t *testing.T) {
	f := newFixture(t, true)
	f.login(t, false)

	rec := f.sealed(t, f.derive(t, "someone else"), bank)
	got, err := f.svc.Credentials.DecryptRecord(rec)

	require.NoError(t, err)
	assert.Equal(t, Placeholder, got.Title)
	assert.Equal(t, Placeholder, got.Secret)
	assert.Equal(t, []string{models.FieldTitle, models.FieldUsername, models.FieldSecret, models.FieldURL}, got.Unavailable)
}
