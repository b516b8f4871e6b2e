// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
	"github.com/tomtom215/refeed/internal/models"
)

// BreakerSettings tunes BreakerStore.
type BreakerSettings struct {
	Name string
	// MinRequests in the Interval before the failure ratio is considered.
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	// OpenTimeout is how long the circuit stays open before half-open probing.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings opens after 60% failures over at least 10 calls in
// a minute and lets a trial request through after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "meal-store",
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		OpenTimeout:  30 * time.Second,
	}
}

// BreakerStore fails fast while the backing store is unhealthy.
type BreakerStore struct {
	next MealStore
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerStore wraps next in a circuit breaker.
func NewBreakerStore(next MealStore, settings BreakerSettings) *BreakerStore {
	name := settings.Name
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

// isBreakerSuccess treats lookups of missing keys and caller cancellation
// as healthy backend responses.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTableExists) ||
		errors.Is(err, context.Canceled)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// IsOpen reports whether err came from a breaker rejecting the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (s *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := s.cb.Execute(fn)
	switch {
	case IsOpen(err):
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
	case isBreakerSuccess(err):
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
	}
	return result, err
}

// State exposes the current breaker state.
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *BreakerStore) CreateTableIfAbsent(ctx context.Context) error {
	_, err := s.execute(func() (any, error) {
		return nil, s.next.CreateTableIfAbsent(ctx)
	})
	return err
}

func (s *BreakerStore) Get(ctx context.Context, id string) (*models.Meal, error) {
	res, err := s.execute(func() (any, error) {
		return s.next.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.Meal), nil
}

func (s *BreakerStore) Put(ctx context.Context, meal *models.Meal) error {
	_, err := s.execute(func() (any, error) {
		return nil, s.next.Put(ctx, meal)
	})
	return err
}

func (s *BreakerStore) Delete(ctx context.Context, id string) error {
	_, err := s.execute(func() (any, error) {
		return nil, s.next.Delete(ctx, id)
	})
	return err
}

func (s *BreakerStore) Scan(ctx context.Context) (*ScanResult, error) {
	res, err := s.execute(func() (any, error) {
		return s.next.Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*ScanResult), nil
}

func (s *BreakerStore) Close() error {
	return s.next.Close()
}
