package adapter

import "errors"

// Transport errors. HTTP statuses are mapped onto them by mapHTTPError so
// callers can branch with errors.Is without knowing the protocol.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

// ErrTokenExpired is returned before any request is sent when the bearer
// token's exp claim has already passed. The user has to log in again.
var ErrTokenExpired = errors.New("session token expired")

// ErrNoToken is returned for authenticated calls made before login.
var ErrNoToken = errors.New("no session token, log in first")
