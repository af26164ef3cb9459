package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the client's view of the bearer token issued by the server.
//
// The client cannot verify the signature (it does not own the signing key),
// so the claims are read unverified and used only for local decisions such as
// refusing to send a request with an already expired token.
type Token struct {
	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Expired reports whether the token's "exp" claim lies before now. A token
// without an expiry never expires from the client's point of view.
func (t Token) Expired(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return now.After(t.ExpiresAt.Time)
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
