// Package workers runs the background side of the identity server: a
// bounded pool executing fire-and-forget tasks (notifications, artifact
// cleanup) and the periodic sweeper of expired reset tokens.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled and the
// worker has released everything it started.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// ExpiredTokenPurger deletes reset tokens past their expiry.
type ExpiredTokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
