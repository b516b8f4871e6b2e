// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
	"github.com/tomtom215/refeed/internal/models"
)

// RetryingStore retries idempotent reads on transient failures.
// Writes are passed through untouched.
type RetryingStore struct {
	next       MealStore
	maxRetries uint64
	initial    time.Duration
}

// NewRetryingStore wraps next. maxRetries of zero disables retrying.
func NewRetryingStore(next MealStore, maxRetries int, initial time.Duration) *RetryingStore {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	return &RetryingStore{next: next, maxRetries: uint64(maxRetries), initial: initial}
}

func (s *RetryingStore) policy(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.initial
	eb.MaxInterval = 10 * s.initial
	eb.MaxElapsedTime = 0
	eb.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(eb, s.maxRetries), ctx)
}

// permanent marks errors that retrying cannot fix.
func permanent(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		IsOpen(err) {
		return backoff.Permanent(err)
	}
	return err
}

func (s *RetryingStore) notify(op string) backoff.Notify {
	return func(err error, wait time.Duration) {
		metrics.StoreReadRetries.WithLabelValues(op).Inc()
		logging.Debug().Err(err).Str("operation", op).Dur("wait", wait).Msg("Retrying store read")
	}
}

func (s *RetryingStore) CreateTableIfAbsent(ctx context.Context) error {
	return s.next.CreateTableIfAbsent(ctx)
}

func (s *RetryingStore) Get(ctx context.Context, id string) (*models.Meal, error) {
	return backoff.RetryNotifyWithData(func() (*models.Meal, error) {
		m, err := s.next.Get(ctx, id)
		return m, permanent(err)
	}, s.policy(ctx), s.notify("get"))
}

func (s *RetryingStore) Put(ctx context.Context, meal *models.Meal) error {
	return s.next.Put(ctx, meal)
}

func (s *RetryingStore) Delete(ctx context.Context, id string) error {
	return s.next.Delete(ctx, id)
}

func (s *RetryingStore) Scan(ctx context.Context) (*ScanResult, error) {
	return backoff.RetryNotifyWithData(func() (*ScanResult, error) {
		res, err := s.next.Scan(ctx)
		return res, permanent(err)
	}, s.policy(ctx), s.notify("scan"))
}

func (s *RetryingStore) Close() error {
	return s.next.Close()
}
