package client

import "errors"

var (
	// ErrUnknownCommand is returned for a command name the client does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command is called with wrong arguments.
	ErrUsage = errors.New("wrong usage")
	// ErrPasscodeMismatch is returned when the passcode confirmation differs.
	ErrPasscodeMismatch = errors.New("passcodes do not match")
)
