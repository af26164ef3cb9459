package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/service"
)

const maxCellWidth = 40

// RenderCredentials renders the vault listing. Secrets and notes are never
// shown.
func RenderCredentials(creds []service.DecryptedCredential) string {
	if len(creds) == 0 {
		return renderPage(titleStyle.Render("VAULT"), "No records", "")
	}

	rows := make([][]string, 0, len(creds))
	for _, c := range creds {
		rows = append(rows, []string{
			c.ID,
			fitText(c.Title, maxCellWidth),
			fitText(c.Username, maxCellWidth),
			fitText(c.URL, maxCellWidth),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "USERNAME", "URL").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return t.String()
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
