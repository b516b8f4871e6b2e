// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"fmt"

	"github.com/tomtom215/refeed/internal/config"
	"github.com/tomtom215/refeed/internal/logging"
)

// Backend names accepted in store.backend.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendDynamoDB = "dynamodb"
)

// Open constructs the configured backend and layers the decorators on top:
// retries outermost, then the circuit breaker, then metrics.
func Open(ctx context.Context, cfg config.StoreConfig) (MealStore, error) {
	var base MealStore
	switch cfg.Backend {
	case BackendMemory, "":
		base = NewMemoryStore(cfg.Table)
	case BackendBadger:
		bs, err := OpenBadgerStore(cfg.Path, cfg.Table)
		if err != nil {
			return nil, err
		}
		base = bs
	case BackendDynamoDB:
		ds, err := OpenDynamoStore(ctx, cfg.DynamoDB, cfg.Table)
		if err != nil {
			return nil, err
		}
		base = ds
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	backend := cfg.Backend
	if backend == "" {
		backend = BackendMemory
	}

	var s MealStore = NewInstrumentedStore(base, backend)
	if cfg.BreakerEnabled {
		s = NewBreakerStore(s, DefaultBreakerSettings())
	}
	s = NewRetryingStore(s, cfg.ReadRetries, cfg.ReadRetryBackoff)

	logging.Info().
		Str("backend", backend).
		Str("table", cfg.Table).
		Int("read_retries", cfg.ReadRetries).
		Bool("breaker", cfg.BreakerEnabled).
		Msg("Meal store opened")
	return s, nil
}
