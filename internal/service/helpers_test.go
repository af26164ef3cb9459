package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/mock"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/session"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/store"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/vault"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

var cheapParams = crypto.KDFParams{Time: 1, Memory: 1024, Threads: 1, KeyLen: crypto.MasterKeySize}

const (
	testUserID   = "user-42"
	testLogin    = "alice"
	testPepper   = "pepper-v1"
	testPassword = "correct-horse"
	testToken    = "token-1"
)

// fixture wires real crypto, session, vault and secure storage with mocked
// server, cache and device authentication.
type fixture struct {
	ctrl    *gomock.Controller
	adapter *mock.MockServerAdapter
	cache   *mock.MockCredentialRepository
	auth    *mock.MockAuthenticator
	storage *store.MemorySecureStorage
	deriver crypto.KeyDeriver
	cipher  crypto.FieldCipher

	session *session.Store
	svc     *Services
}

func newFixture(t *testing.T, enrolled bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthenticator(ctrl)
	auth.EXPECT().HasHardware().Return(enrolled).AnyTimes()
	auth.EXPECT().IsEnrolled().Return(enrolled).AnyTimes()

	deriver, err := crypto.NewKeyDeriverWithParams(cheapParams)
	require.NoError(t, err)

	f := &fixture{
		ctrl:    ctrl,
		adapter: mock.NewMockServerAdapter(ctrl),
		cache:   mock.NewMockCredentialRepository(ctrl),
		auth:    auth,
		storage: store.NewMemorySecureStorage(auth),
		deriver: deriver,
		cipher:  crypto.NewFieldCipher(),
	}
	f.restart()
	return f
}

// restart simulates a new process on the same device: the session is empty,
// secure storage survives.
func (f *fixture) restart() {
	f.session = session.NewStore(nil)
	f.svc = NewServices(Deps{
		Deriver:       f.deriver,
		Cipher:        f.cipher,
		Session:       f.session,
		Vault:         vault.NewKeyVault(f.storage, f.auth, nil),
		SecureStorage: f.storage,
		Cache:         f.cache,
		Adapter:       f.adapter,
		Pipeline:      rotation.NewPipeline(f.deriver, f.cipher, 2, nil),
		Logger:        logger.Nop(),
	})
}

func (f *fixture) login(t *testing.T, remember bool) LoginResult {
	t.Helper()
	f.adapter.EXPECT().SetToken(testToken)

	res, err := f.svc.Auth.Login(context.Background(), LoginRequest{
		Password: testPassword,
		UserID:   testUserID,
		Login:    testLogin,
		Pepper:   testPepper,
		Token:    testToken,
	}, remember)
	require.NoError(t, err)
	return res
}

func (f *fixture) derive(t *testing.T, password string) *crypto.MasterKey {
	t.Helper()
	key, err := f.deriver.Derive(password, testUserID, testPepper)
	require.NoError(t, err)
	return key
}

func (f *fixture) sessionKey(t *testing.T) *crypto.MasterKey {
	t.Helper()
	key, err := f.session.Get()
	require.NoError(t, err)
	return key
}

func (f *fixture) sealed(t *testing.T, key *crypto.MasterKey, cred models.Credential) models.CredentialRecord {
	t.Helper()
	rec := models.CredentialRecord{ID: cred.ID, CategoryID: cred.CategoryID}
	var err error
	rec.Title, err = f.cipher.Encrypt(cred.Title, key)
	require.NoError(t, err)
	rec.Username, err = f.cipher.Encrypt(cred.Username, key)
	require.NoError(t, err)
	rec.Secret, err = f.cipher.Encrypt(cred.Secret, key)
	require.NoError(t, err)
	rec.URL, err = f.cipher.EncryptOptional(cred.URL, key)
	require.NoError(t, err)
	rec.Notes, err = f.cipher.EncryptOptional(cred.Notes, key)
	require.NoError(t, err)
	return rec
}

var bank = models.Credential{
	ID:         "rec-1",
	CategoryID: "finance",
	Title:      "My Bank",
	Username:   "alice@example.com",
	Secret:     "hunter2",
	URL:        "https://bank.example.com",
}
