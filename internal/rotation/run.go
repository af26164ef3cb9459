package rotation

import (
	"context"
	"sync"
)

// Run is a rotation executing on its own goroutine.
//
// Progress values are buffered so a run never waits for a reader; the channel
// is closed when the run ends. A Run that is dropped without calling Wait
// simply finishes and its result is collected as garbage.
type Run struct {
	progress chan int
	done     chan struct{}
	cancel   context.CancelFunc

	once   sync.Once
	result Result
	err    error
}

// Start launches p.Rotate for req in the background.
func (p *Pipeline) Start(ctx context.Context, req Request) *Run {
	ctx, cancel := context.WithCancel(ctx)

	batches := (len(req.Records) + p.batchSize - 1) / p.batchSize
	r := &Run{
		progress: make(chan int, batches+1),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	go func() {
		defer close(r.done)
		defer close(r.progress)
		defer cancel()

		r.result, r.err = p.Rotate(ctx, req, func(percent int) {
			r.progress <- percent
		})
	}()

	return r
}

// Progress returns the channel of completion percentages.
func (r *Run) Progress() <-chan int {
	return r.progress
}

// Done is closed once the run has finished.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run finishes and returns its outcome.
func (r *Run) Wait() (Result, error) {
	<-r.done
	return r.result, r.err
}

// Cancel asks the run to stop at the next batch boundary.
func (r *Run) Cancel() {
	r.cancel()
}

// Discard cancels the run, waits for it and wipes the new key if one was
// produced. The old key is untouched. Wait still reports the outcome, with
// an unusable key.
func (r *Run) Discard() {
	r.once.Do(func() {
		r.cancel()
		<-r.done
		if r.result.NewKey != nil {
			r.result.NewKey.Wipe()
		}
	})
}
