// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/refeed/internal/config"
	"github.com/tomtom215/refeed/internal/metrics"
)

// Session store backends accepted in security.session_store.
const (
	SessionStoreMemory = "memory"
	SessionStoreBadger = "badger"
)

// SessionStore remembers which tokens this server has issued.
type SessionStore interface {
	// Add records token as issued until expiresAt.
	Add(ctx context.Context, token string, expiresAt time.Time) error

	// Contains reports whether token was issued and has not expired.
	Contains(ctx context.Context, token string) (bool, error)

	// CleanupExpired drops expired tokens and returns how many were removed.
	CleanupExpired(ctx context.Context) (int, error)

	// Count returns the number of live tokens.
	Count(ctx context.Context) (int, error)

	Close() error
}

// tokenKey hashes a token so raw credentials never sit in the store.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewSessionStore creates the store selected in cfg.
func NewSessionStore(cfg *config.SecurityConfig) (SessionStore, error) {
	switch cfg.SessionStore {
	case SessionStoreMemory, "":
		return NewMemorySessionStore(), nil
	case SessionStoreBadger:
		return OpenBadgerSessionStore(cfg.SessionStorePath)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// MemorySessionStore is a mutex-guarded map of token hash to expiry.
type MemorySessionStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *MemorySessionStore) Add(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	s.tokens[tokenKey(token)] = expiresAt
	n := len(s.tokens)
	s.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return nil
}

func (s *MemorySessionStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	exp, ok := s.tokens[tokenKey(token)]
	s.mu.RUnlock()

	return ok && s.now().Before(exp), nil
}

func (s *MemorySessionStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, k)
			removed++
		}
	}
	metrics.SessionsActive.Set(float64(len(s.tokens)))
	return removed, nil
}

func (s *MemorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens), nil
}

func (s *MemorySessionStore) Close() error { return nil }
