// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

// SessionCleanup periodically deletes sessions that expired or were revoked
// more than the retention period ago.
type SessionCleanup struct {
	sessions  SessionPurger
	recorder  PurgeRecorder
	interval  time.Duration
	retention time.Duration
	now       func() time.Time

	logger *logger.Logger
}

// NewSessionCleanup creates the worker. recorder may be nil.
func NewSessionCleanup(sessions SessionPurger, recorder PurgeRecorder, cfg config.Workers, logger *logger.Logger) *SessionCleanup {
	return &SessionCleanup{
		sessions:  sessions,
		recorder:  recorder,
		interval:  cfg.CleanupInterval,
		retention: cfg.SessionRetention,
		now:       time.Now,
		logger:    logger.WithComponent("session_cleanup"),
	}
}

// Run purges once right away and then every interval until ctx is done.
// A non-positive interval disables the worker.
func (c *SessionCleanup) Run(ctx context.Context) {
	if c.interval <= 0 {
		c.logger.Info().Msg("session cleanup disabled")
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		c.Purge(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Purge runs a single cleanup pass and returns the number of deleted sessions.
func (c *SessionCleanup) Purge(ctx context.Context) int64 {
	cutoff := c.now().Add(-c.retention)

	deleted, err := c.sessions.DeleteExpiredSessions(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Err(err).Msg("error purging sessions")
		}
		return 0
	}

	if deleted > 0 {
		c.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("purged sessions")
	}
	if c.recorder != nil {
		c.recorder.AddSessionsPurged(deleted)
	}

	return deleted
}
