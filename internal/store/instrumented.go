// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/refeed/internal/metrics"
	"github.com/tomtom215/refeed/internal/models"
)

// InstrumentedStore records Prometheus timings for every call.
type InstrumentedStore struct {
	next    MealStore
	backend string
}

// NewInstrumentedStore wraps next, labelling metrics with backend.
func NewInstrumentedStore(next MealStore, backend string) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend}
}

func (s *InstrumentedStore) record(op string, start time.Time, err error) {
	// Expected outcomes are not failures.
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTableExists) {
		err = nil
	}
	metrics.RecordStoreOperation(s.backend, op, time.Since(start), err)
}

func (s *InstrumentedStore) CreateTableIfAbsent(ctx context.Context) error {
	start := time.Now()
	err := s.next.CreateTableIfAbsent(ctx)
	s.record("create_table", start, err)
	return err
}

func (s *InstrumentedStore) Get(ctx context.Context, id string) (*models.Meal, error) {
	start := time.Now()
	m, err := s.next.Get(ctx, id)
	s.record("get", start, err)
	return m, err
}

func (s *InstrumentedStore) Put(ctx context.Context, meal *models.Meal) error {
	start := time.Now()
	err := s.next.Put(ctx, meal)
	s.record("put", start, err)
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.record("delete", start, err)
	return err
}

func (s *InstrumentedStore) Scan(ctx context.Context) (*ScanResult, error) {
	start := time.Now()
	res, err := s.next.Scan(ctx)
	s.record("scan", start, err)
	if res != nil && res.Skipped > 0 {
		metrics.StoreSkippedRecords.Add(float64(res.Skipped))
	}
	return res, err
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
