package tui

import "strings"

const pageWidth = 54

var uiDivider = strings.Repeat("─", pageWidth)

// renderPage frames data between two dividers, indented by two spaces.
func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n")
	writeIndented(&b, uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(data) == "" {
		data = "-"
	}
	for _, line := range strings.Split(data, "\n") {
		writeIndented(&b, line)
	}

	b.WriteString("\n")
	writeIndented(&b, uiDivider)
	if strings.TrimSpace(hotKeys) != "" {
		writeIndented(&b, hotKeys)
	}

	return b.String()
}

func writeIndented(b *strings.Builder, line string) {
	b.WriteString("  ")
	b.WriteString(line)
	b.WriteString("\n")
}
