package vault

import (
	"context"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/secure_storage_mock.go -package=mock

// SecureStorage is the platform facility that keeps small secrets behind
// device authentication.
type SecureStorage interface {
	// SetItem writes value under name with the given access policy,
	// replacing any previous value.
	SetItem(ctx context.Context, name string, value []byte, policy models.AccessPolicy) error

	// GetItem reads the value stored under name. When the item requires
	// authentication, prompt is shown to the user first.
	GetItem(ctx context.Context, name string, prompt string) ([]byte, error)

	// DeleteItem removes name. Deleting a missing item is not an error.
	DeleteItem(ctx context.Context, name string) error
}
