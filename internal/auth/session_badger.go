// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
)

const sessionKeyPrefix = "session:"

// BadgerSessionStore persists issued tokens so they survive restarts.
// Entries carry a Badger TTL equal to the token expiry.
type BadgerSessionStore struct {
	db *badger.DB
}

// OpenBadgerSessionStore opens a database at path, or in memory when path is empty.
func OpenBadgerSessionStore(path string) (*BadgerSessionStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	logging.Info().Str("path", path).Msg("Badger session store opened")
	return &BadgerSessionStore{db: db}, nil
}

// NewBadgerSessionStore wraps an already open database.
func NewBadgerSessionStore(db *badger.DB) *BadgerSessionStore {
	return &BadgerSessionStore{db: db}
}

func (s *BadgerSessionStore) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(sessionKeyPrefix+tokenKey(token)), []byte{1}).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	if n, err := s.Count(ctx); err == nil {
		metrics.SessionsActive.Set(float64(n))
	}
	return nil
}

func (s *BadgerSessionStore) Contains(_ context.Context, token string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(sessionKeyPrefix + tokenKey(token)))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get session: %w", err)
	}
	return true, nil
}

// CleanupExpired runs value log GC; expired keys are already invisible.
func (s *BadgerSessionStore) CleanupExpired(ctx context.Context) (int, error) {
	if err := s.db.RunValueLogGC(0.5); err != nil &&
		!errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrGCInMemoryMode) {
		return 0, fmt.Errorf("session store gc: %w", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	metrics.SessionsActive.Set(float64(n))
	return 0, nil
}

func (s *BadgerSessionStore) Count(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(sessionKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (s *BadgerSessionStore) Close() error {
	return s.db.Close()
}
