// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/service"
)

const maxBarWidth = 60

// rotationModel follows one password change. It quits once the service
// reports back, including after a cancellation.
type rotationModel struct {
	bar     progress.Model
	percent int

	cancel    func()
	cancelled bool
	done      bool
	result    service.ChangePasswordResult
	err       error
}

func newRotationModel(cancel func()) rotationModel {
	return rotationModel{
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		cancel: cancel,
	}
}

func (m rotationModel) Init() tea.Cmd {
	return nil
}

func (m rotationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.cancel) && !m.cancelled && !m.done {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case progressMsg:
		// the run reports monotonic values; a late duplicate is ignored
		if int(msg) <= m.percent {
			return m, nil
		}
		m.percent = int(msg)
		return m, m.bar.SetPercent(float64(m.percent) / 100)

	case changeDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m rotationModel) View() string {
	var status string
	switch {
	case m.done && m.err != nil:
		status = errorStyle.Render("Password not changed: " + HumanizeError(m.err))
	case m.done:
		status = successStyle.Render(fmt.Sprintf("Re-encrypted %d records. Please log in again.", m.result.Records))
	case m.cancelled:
		status = "Cancelling, the current password stays in use..."
	case m.percent >= 100:
		status = "Submitting the new password..."
	default:
		status = fmt.Sprintf("Re-encrypting records: %d%%", m.percent)
	}

	body := m.bar.View() + "\n\n" + status
	return renderPage(titleStyle.Render("CHANGE MASTER PASSWORD"), body, helpStyle.Render(keys.cancel.Help().Key+": "+keys.cancel.Help().Desc))
}
