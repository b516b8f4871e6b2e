// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// Package bootstrap prepares the meal table before the API starts serving.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/refeed/internal/config"
	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
	"github.com/tomtom215/refeed/internal/models"
	"github.com/tomtom215/refeed/internal/store"
)

// ErrStoreNotReady means the table could not be confirmed within the
// configured number of attempts.
var ErrStoreNotReady = errors.New("meal store not ready")

// EnsureTable creates the meal table, retrying until it exists or
// cfg.MaxAttempts is exhausted.
func EnsureTable(ctx context.Context, s store.MealStore, cfg config.BootstrapConfig) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.CreateTableIfAbsent(ctx)
		switch {
		case err == nil:
			metrics.BootstrapAttempts.WithLabelValues("created").Inc()
			logging.Info().Int("attempt", attempt).Msg("Meal table created")
			return nil
		case errors.Is(err, store.ErrTableExists):
			metrics.BootstrapAttempts.WithLabelValues("exists").Inc()
			logging.Info().Int("attempt", attempt).Msg("Meal table already exists")
			return nil
		}

		metrics.BootstrapAttempts.WithLabelValues("failed").Inc()
		lastErr = err
		logging.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("retry_in", cfg.RetryDelay).
			Msg("Meal table not ready")

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(cfg.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrStoreNotReady, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrStoreNotReady, attempts, lastErr)
}

// SeedMeals are the two meals written on every start.
func SeedMeals() []*models.Meal {
	return []*models.Meal{
		{
			ID:          "f11b1c5e-d6d8-4dce-8a9d-9e05d870b881",
			Name:        "Burritos",
			Description: "Amazing burritos",
			Stars:       models.IntPtr(4),
		},
		{
			ID:          uuid.MustParse("936DA01F9ABD4d9d80C702AF85C822A8").String(),
			Name:        "Pizza",
			Description: "Delicious pizza",
			Stars:       models.IntPtr(5),
		},
	}
}

// Seed upserts SeedMeals. Failures are logged and do not stop startup.
func Seed(ctx context.Context, s store.MealStore) int {
	written := 0
	for _, meal := range SeedMeals() {
		if err := s.Put(ctx, meal); err != nil {
			logging.Warn().Err(err).Str("meal_id", meal.ID).Msg("Failed to seed meal")
			continue
		}
		written++
	}
	logging.Info().Int("meals", written).Msg("Seed data written")
	return written
}
