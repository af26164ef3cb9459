package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	cancel key.Binding
}

var keys = keyMap{
	cancel: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("ctrl+c", "cancel")),
}
