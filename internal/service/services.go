package service

import (
	"context"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/session"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/store"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/utils"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/validators"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/vault"
)

// Deps are the collaborators shared by all services.
type Deps struct {
	Deriver       crypto.KeyDeriver
	Cipher        crypto.FieldCipher
	Session       *session.Store
	Vault         *vault.KeyVault
	SecureStorage vault.SecureStorage
	Cache         store.CredentialRepository
	Adapter       adapter.ServerAdapter
	Validator     validators.Validator
	Pipeline      *rotation.Pipeline
	Logger        *logger.Logger
}

type Services struct {
	Auth        AuthService
	Credentials CredentialService
	Password    PasswordService
}

func NewServices(deps Deps) *Services {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Validator == nil {
		deps.Validator = validators.NewRequestValidator()
	}

	p := newProfiles(deps.SecureStorage)
	ids := utils.NewUUIDGenerator()
	credentials := newCredentialService(deps, p, ids)

	return &Services{
		Auth:        newAuthService(deps, p, ids),
		Credentials: credentials,
		Password:    newPasswordService(deps, p, ids),
	}
}

// operation tags ctx with a fresh request id, sent to the server and logged.
func operation(ctx context.Context, ids *utils.UUIDGenerator, log *logger.Logger) (context.Context, *logger.Logger) {
	id, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		id = ids.Generate()
		ctx = utils.WithRequestID(ctx, id)
	}
	child := &logger.Logger{Logger: log.With().Str("request_id", id).Logger()}
	return child.WithContext(ctx), child
}
