// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs
// several workers side by side until their context is cancelled.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// SessionPurger deletes sessions that expired or were revoked before a
// cutoff. Satisfied by store.SessionRepository.
type SessionPurger interface {
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// PurgeRecorder counts purged sessions. Satisfied by *metrics.Metrics.
type PurgeRecorder interface {
	AddSessionsPurged(n int64)
}
