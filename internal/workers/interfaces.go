// Package workers provides background workers of the client process.
// It defines the Worker interface and a Workers aggregate that starts
// several workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations spawn their own goroutine and stop it
// once ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
