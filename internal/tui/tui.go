// Package tui renders the interactive parts of the client: the progress of a
// master password change and a few static pages.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/service"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

var ErrUserQuit = errors.New("cancelled by user")

type TUI struct {
	passwords service.PasswordService
	logger    *logger.Logger
	opts      []tea.ProgramOption
}

func New(passwords service.PasswordService, log *logger.Logger, opts ...tea.ProgramOption) *TUI {
	if log == nil {
		log = logger.Nop()
	}
	return &TUI{passwords: passwords, logger: log, opts: opts}
}

// ChangePassword runs the master password change behind a progress bar.
// ctrl+c cancels the run; the old key then stays in use and ErrUserQuit is
// returned together with the service error.
func (t *TUI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (service.ChangePasswordResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newRotationModel(cancel), t.opts...)

	go func() {
		res, err := t.passwords.ChangeMasterPassword(ctx, req, func(percent int) {
			p.Send(progressMsg(percent))
		})
		p.Send(changeDoneMsg{result: res, err: err})
	}()

	finalModel, runErr := p.Run()
	if runErr != nil {
		return service.ChangePasswordResult{}, runErr
	}

	result, ok := finalModel.(rotationModel)
	if !ok {
		return service.ChangePasswordResult{}, tea.ErrProgramKilled
	}
	if result.cancelled {
		t.logger.Info().Str("func", "TUI.ChangePassword").Msg("password change cancelled by user")
		return service.ChangePasswordResult{}, errors.Join(ErrUserQuit, result.err)
	}
	return result.result, result.err
}
