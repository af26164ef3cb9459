package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Change-password errors, in the order the form reports them.
var (
	ErrMissingPasswordFields = errors.New("all password fields are required")
	ErrPasswordUnchanged     = errors.New("new password must differ from the current one")
	ErrPasswordMismatch      = errors.New("password confirmation does not match")
	ErrPasswordTooShort      = errors.New("new password must be at least 8 characters long")
)

var (
	ErrMissingLoginFields = errors.New("login and password are required")
	ErrInvalidCredential  = errors.New("title, username and password are required")
	ErrInvalidURL         = errors.New("site url is too long")
)
