// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"testing"
	"time"
)

func TestLoginLimiter(t *testing.T) {
	t.Parallel()
	now := time.Now()
	l := NewLoginLimiter(3, 3*time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if l.Blocked("matthew") {
			t.Fatalf("blocked after %d failures", i)
		}
		l.RecordFailure("matthew")
	}
	if !l.Blocked("matthew") {
		t.Error("not blocked after 3 failures")
	}
	if l.Blocked("someone-else") {
		t.Error("unrelated user blocked")
	}

	// One token refills per minute.
	now = now.Add(time.Minute + time.Second)
	if l.Blocked("matthew") {
		t.Error("still blocked after refill")
	}

	l.Reset("matthew")
	if l.Blocked("matthew") {
		t.Error("blocked after reset")
	}
}

func TestLoginLimiter_Disabled(t *testing.T) {
	t.Parallel()
	l := NewLoginLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		l.RecordFailure("matthew")
	}
	if l.Blocked("matthew") {
		t.Error("disabled limiter blocked a user")
	}
}

func TestLoginLimiter_Prune(t *testing.T) {
	t.Parallel()
	now := time.Now()
	l := NewLoginLimiter(5, time.Minute)
	l.now = func() time.Time { return now }

	l.RecordFailure("old")
	now = now.Add(time.Hour)
	l.RecordFailure("fresh")

	if removed := l.Prune(30 * time.Minute); removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if _, ok := l.limiters["fresh"]; !ok {
		t.Error("fresh entry pruned")
	}
}

func TestLoginLimiter_PruneKeepsBlockedUsers(t *testing.T) {
	t.Parallel()
	now := time.Now()
	l := NewLoginLimiter(2, 24*time.Hour)
	l.now = func() time.Time { return now }

	l.RecordFailure("matthew")
	l.RecordFailure("matthew")
	now = now.Add(time.Hour)

	if removed := l.Prune(30 * time.Minute); removed != 0 {
		t.Errorf("Prune removed %d, want 0", removed)
	}
	if !l.Blocked("matthew") {
		t.Error("lockout lost after prune")
	}
}
