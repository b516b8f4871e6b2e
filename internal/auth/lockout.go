// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles failed logins per username with a token bucket.
// Each failure spends a token; a username with no tokens left is blocked
// until the bucket refills.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*loginEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type loginEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter allows maxFailures failures per window. A non-positive
// maxFailures disables limiting.
func NewLoginLimiter(maxFailures int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		limiters: make(map[string]*loginEntry),
		burst:    maxFailures,
		now:      time.Now,
	}
	if maxFailures > 0 && window > 0 {
		l.limit = rate.Every(window / time.Duration(maxFailures))
	}
	return l
}

func (l *LoginLimiter) enabled() bool {
	return l.burst > 0 && l.limit > 0
}

func (l *LoginLimiter) entry(username string) *loginEntry {
	e, ok := l.limiters[username]
	if !ok {
		e = &loginEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[username] = e
	}
	e.lastSeen = l.now()
	return e
}

// Blocked reports whether username has used up its failure allowance.
func (l *LoginLimiter) Blocked(username string) bool {
	if !l.enabled() {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[username]
	if !ok {
		return false
	}
	return e.limiter.TokensAt(l.now()) < 1
}

// RecordFailure spends one token for username.
func (l *LoginLimiter) RecordFailure(username string) {
	if !l.enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(username).limiter.AllowN(l.now(), 1)
}

// Reset forgets username after a successful login.
func (l *LoginLimiter) Reset(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, username)
}

// Prune drops usernames idle for longer than maxIdle whose allowance has
// fully refilled, so a pruned user is indistinguishable from a new one.
func (l *LoginLimiter) Prune(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-maxIdle)
	removed := 0
	for user, e := range l.limiters {
		if e.lastSeen.Before(cutoff) && e.limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, user)
			removed++
		}
	}
	return removed
}
