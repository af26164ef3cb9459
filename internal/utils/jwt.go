package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

// ErrInvalidAuthorizationHeader is returned when an Authorization header is
// not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// ParseTokenUnverified decodes the registered claims of a JWT without
// checking its signature. The client does not own the signing key; the result
// may only drive local decisions such as not sending an expired token.
//
// Example usage:
//
//	token, err := utils.ParseTokenUnverified(raw)
//	if err == nil && token.Expired(time.Now()) {
//	    // ask the user to log in again
//	}
func ParseTokenUnverified(tokenString string) (models.Token, error) {
	var claims models.Token
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.Token{}, fmt.Errorf("parse token claims: %w", err)
	}

	claims.SignedString = tokenString
	return claims, nil
}
