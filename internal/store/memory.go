// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"sync"

	"github.com/tomtom215/refeed/internal/models"
)

// MemoryStore keeps meals in a mutex-guarded map. Contents are lost on
// restart.
type MemoryStore struct {
	mu      sync.RWMutex
	table   string
	created bool
	meals   map[string]*models.Meal
}

// NewMemoryStore returns an empty store whose table does not exist yet.
func NewMemoryStore(table string) *MemoryStore {
	return &MemoryStore{
		table: table,
		meals: make(map[string]*models.Meal),
	}
}

// CreateTableIfAbsent marks the table as created.
func (s *MemoryStore) CreateTableIfAbsent(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.created {
		return ErrTableExists
	}
	s.created = true
	return nil
}

// Get returns a copy of the stored meal.
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.created {
		return nil, ErrTableNotFound
	}
	m, ok := s.meals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.Clone(), nil
}

// Put stores a copy of meal under meal.ID.
func (s *MemoryStore) Put(ctx context.Context, meal *models.Meal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.created {
		return ErrTableNotFound
	}
	s.meals[meal.ID] = meal.Clone()
	return nil
}

// Delete removes id. Missing ids are not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.created {
		return ErrTableNotFound
	}
	delete(s.meals, id)
	return nil
}

// Scan returns copies of every meal in no particular order.
func (s *MemoryStore) Scan(ctx context.Context) (*ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.created {
		return nil, ErrTableNotFound
	}
	meals := make([]*models.Meal, 0, len(s.meals))
	for _, m := range s.meals {
		meals = append(meals, m.Clone())
	}
	return &ScanResult{Meals: meals}, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
