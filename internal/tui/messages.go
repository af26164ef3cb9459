package tui

import "github.com/MKhiriev/go-pass-keeper-vault/internal/service"

// progressMsg carries the rotation progress in percent.
type progressMsg int

type changeDoneMsg struct {
	result service.ChangePasswordResult
	err    error
}
