package rotation

import (
	"errors"
	"fmt"
)

// ErrRotationAborted is returned when a run is abandoned before every record
// was re-encrypted. Nothing produced by the run may be used; the old key stays
// authoritative.
var ErrRotationAborted = errors.New("rotation: aborted, old key remains authoritative")

// RecordError points at the record attribute that stopped a run.
// It matches both ErrRotationAborted and the underlying cause with errors.Is.
type RecordError struct {
	RecordID string
	Field    string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: record %q, field %s: %v", ErrRotationAborted, e.RecordID, e.Field, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrRotationAborted, e.Err}
}
