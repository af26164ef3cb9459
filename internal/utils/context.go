// Package utils provides small helpers shared by the client packages: the
// resty-based HTTP client, request id propagation through context.Context,
// unverified JWT parsing and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestIDCtxKey is the key under which the id of the current client
// operation is stored. The id is sent to the server as X-Request-ID and
// written to the logs so both sides of one operation can be correlated.
var RequestIDCtxKey = contextKey("requestID")

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, id)
}

// GetRequestIDFromContext retrieves the operation id from the context.
//
// Returns the id and an ok flag:
//   - ok == true  - value is found and is a non-empty string
//   - ok == false - value is missing, empty or has an unexpected type
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok && id != ""
}
