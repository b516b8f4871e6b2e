// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// Package store is the key-value capability behind the meal API.
//
// Every backend implements MealStore. Open picks one from configuration and
// wraps it with metrics, a circuit breaker and read retries, so handlers
// never branch on the backend in use.
package store

import (
	"context"
	"errors"

	"github.com/tomtom215/refeed/internal/models"
)

var (
	// ErrNotFound is returned by Get when no meal has the requested id.
	ErrNotFound = errors.New("meal not found")

	// ErrTableExists is returned by CreateTableIfAbsent when the table is already there.
	ErrTableExists = errors.New("table already exists")

	// ErrTableNotFound is returned by item operations before the table exists.
	ErrTableNotFound = errors.New("table does not exist")
)

// ScanResult is the outcome of a full table scan. Skipped counts records
// that could not be decoded and were left out of Meals.
type ScanResult struct {
	Meals   []*models.Meal
	Skipped int
}

// MealStore is a single table of meals keyed by id.
//
// Implementations provide per-key atomicity only. Put is an upsert and
// Delete of a missing id succeeds.
type MealStore interface {
	// CreateTableIfAbsent creates the table, returning ErrTableExists when it
	// was already present.
	CreateTableIfAbsent(ctx context.Context) error
	Get(ctx context.Context, id string) (*models.Meal, error)
	Put(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) (*ScanResult, error)
	Close() error
}
