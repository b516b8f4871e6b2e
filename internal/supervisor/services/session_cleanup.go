// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package services

import (
	"context"
	"time"

	"github.com/tomtom215/refeed/internal/logging"
)

// ExpiredSessionCleaner drops issued tokens past their expiry.
type ExpiredSessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// IdleEntryPruner drops per-user login limiter state.
type IdleEntryPruner interface {
	Prune(maxIdle time.Duration) int
}

// SessionCleanupService periodically prunes expired sessions and idle
// login limiter entries. Either dependency may be nil.
type SessionCleanupService struct {
	sessions ExpiredSessionCleaner
	limiter  IdleEntryPruner
	interval time.Duration
}

// NewSessionCleanupService runs every interval (default 10m). Limiter
// entries idle for longer than one interval are pruned.
func NewSessionCleanupService(sessions ExpiredSessionCleaner, limiter IdleEntryPruner, interval time.Duration) *SessionCleanupService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SessionCleanupService{
		sessions: sessions,
		limiter:  limiter,
		interval: interval,
	}
}

// Serve implements suture.Service. Cleanup errors are logged and retried on
// the next tick rather than restarting the service.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass.
func (s *SessionCleanupService) RunOnce(ctx context.Context) {
	log := logging.WithComponent("session-cleanup")

	if s.sessions != nil {
		removed, err := s.sessions.CleanupExpired(ctx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("Session cleanup failed")
		case removed > 0:
			log.Debug().Int("removed", removed).Msg("Expired sessions removed")
		}
	}

	if s.limiter != nil {
		if pruned := s.limiter.Prune(s.interval); pruned > 0 {
			log.Debug().Int("pruned", pruned).Msg("Idle login limiter entries removed")
		}
	}
}

// String names the service in supervisor logs.
func (s *SessionCleanupService) String() string {
	return "session-cleanup"
}
