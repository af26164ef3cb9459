package device

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
)

// DefaultMaxAttempts is the number of passcode tries before Authenticate
// gives up with ErrAuthFailed.
const DefaultMaxAttempts = 3

// PasscodeAuthenticator authenticates the user by a local passcode read from
// the terminal.
type PasscodeAuthenticator struct {
	verifier    *Verifier
	reader      SecretReader
	maxAttempts int
	logger      *logger.Logger
}

// NewPasscodeAuthenticator builds an authenticator from an encoded verifier.
// An empty verifier yields an authenticator that reports IsEnrolled false.
func NewPasscodeAuthenticator(encodedVerifier string, reader SecretReader, log *logger.Logger) (*PasscodeAuthenticator, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &PasscodeAuthenticator{reader: reader, maxAttempts: DefaultMaxAttempts, logger: log}
	if encodedVerifier == "" {
		return a, nil
	}

	v, err := ParseVerifier(encodedVerifier)
	if err != nil {
		return nil, err
	}
	a.verifier = v
	return a, nil
}

// HasHardware implements [Authenticator].
func (a *PasscodeAuthenticator) HasHardware() bool {
	return a.reader != nil && a.reader.Interactive()
}

// IsEnrolled implements [Authenticator].
func (a *PasscodeAuthenticator) IsEnrolled() bool {
	return a.verifier != nil
}

// Authenticate implements [Authenticator]. An empty entry or a closed input
// counts as cancellation.
func (a *PasscodeAuthenticator) Authenticate(ctx context.Context, prompt string) error {
	if !a.IsEnrolled() {
		return ErrNotEnrolled
	}
	if !a.HasHardware() {
		return ErrAuthCancelled
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrAuthCancelled, err)
		}

		passcode, err := a.reader.ReadSecret(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrNoTerminal) {
				return ErrAuthCancelled
			}
			return fmt.Errorf("%w: %v", ErrAuthCancelled, err)
		}
		if len(passcode) == 0 {
			return ErrAuthCancelled
		}

		ok := a.verifier.Verify(passcode)
		clear(passcode)
		if ok {
			return nil
		}
		a.logger.Debug().Int("attempt", attempt).Msg("device passcode rejected")
	}

	return ErrAuthFailed
}
