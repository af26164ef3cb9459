package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// RequestValidator validates user input before it reaches the vault:
// the change-password form, login credentials and new credential records.
// Rules live in the `validate` struct tags of the models; failures are
// translated into the sentinel errors of this package.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns the validator as the Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements [Validator]. When fields are given only those struct
// fields are checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ChangePasswordRequest:
		return v.check(value, changePasswordError, fields...)
	case *models.ChangePasswordRequest:
		return v.check(*value, changePasswordError, fields...)

	case models.Credentials:
		return v.check(value, loginError, fields...)
	case *models.Credentials:
		return v.check(*value, loginError, fields...)

	case models.Credential:
		return v.check(value, credentialError, fields...)
	case *models.Credential:
		return v.check(*value, credentialError, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *RequestValidator) check(obj any, translate func(validator.ValidationErrors) error, fields ...string) error {
	if len(fields) > 0 {
		t := reflect.TypeOf(obj)
		for _, f := range fields {
			if _, ok := t.FieldByName(f); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
		}
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return translate(verrs)
}

func hasTag(verrs validator.ValidationErrors, tag string) bool {
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// changePasswordError reports the first broken rule: missing fields, then an
// unchanged password, then a confirmation mismatch, then the length.
func changePasswordError(verrs validator.ValidationErrors) error {
	switch {
	case hasTag(verrs, "required"):
		return ErrMissingPasswordFields
	case hasTag(verrs, "nefield"):
		return ErrPasswordUnchanged
	case hasTag(verrs, "eqfield"):
		return ErrPasswordMismatch
	case hasTag(verrs, "min"):
		return ErrPasswordTooShort
	default:
		return verrs
	}
}

func loginError(validator.ValidationErrors) error {
	return ErrMissingLoginFields
}

func credentialError(verrs validator.ValidationErrors) error {
	if hasTag(verrs, "required") {
		return ErrInvalidCredential
	}
	if hasTag(verrs, "max") {
		return ErrInvalidURL
	}
	return verrs
}
