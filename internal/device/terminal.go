package device

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal reads secrets from a terminal file descriptor without echo.
type Terminal struct {
	fd  int
	out io.Writer

	// readPassword and isTerminal are seams for tests.
	readPassword func(fd int) ([]byte, error)
	isTerminal   func(fd int) bool
}

// NewTerminal returns a Terminal reading from stdin and printing prompts to
// stderr so that stdout stays clean for command output.
func NewTerminal() *Terminal {
	return &Terminal{
		fd:           int(os.Stdin.Fd()),
		out:          os.Stderr,
		readPassword: term.ReadPassword,
		isTerminal:   term.IsTerminal,
	}
}

// Interactive reports whether the underlying descriptor is a terminal.
func (t *Terminal) Interactive() bool {
	return t.isTerminal(t.fd)
}

// ReadSecret prints prompt and reads one line without echo. The returned
// slice should be wiped by the caller once consumed.
func (t *Terminal) ReadSecret(prompt string) ([]byte, error) {
	if !t.Interactive() {
		return nil, ErrNoTerminal
	}
	if _, err := fmt.Fprint(t.out, prompt+": "); err != nil {
		return nil, err
	}
	secret, err := t.readPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	return secret, nil
}
