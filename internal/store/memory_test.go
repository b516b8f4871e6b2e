// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/refeed/internal/models"
)

// storeFactory lets the conformance checks run against every local backend.
type storeFactory func(t *testing.T) MealStore

func runConformance(t *testing.T, newStore storeFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("operations before table exists", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("Get error = %v, want ErrTableNotFound", err)
		}
		if err := s.Put(ctx, &models.Meal{ID: "x"}); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("Put error = %v, want ErrTableNotFound", err)
		}
		if _, err := s.Scan(ctx); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("Scan error = %v, want ErrTableNotFound", err)
		}
	})

	t.Run("create table twice", func(t *testing.T) {
		s := newStore(t)
		if err := s.CreateTableIfAbsent(ctx); err != nil {
			t.Fatalf("first create: %v", err)
		}
		if err := s.CreateTableIfAbsent(ctx); !errors.Is(err, ErrTableExists) {
			t.Errorf("second create error = %v, want ErrTableExists", err)
		}
	})

	t.Run("put get delete", func(t *testing.T) {
		s := newStore(t)
		if err := s.CreateTableIfAbsent(ctx); err != nil {
			t.Fatalf("create: %v", err)
		}

		meal := &models.Meal{ID: "m1", Name: "Soup", Description: "Hot", Stars: models.IntPtr(3)}
		if err := s.Put(ctx, meal); err != nil {
			t.Fatalf("Put: %v", err)
		}

		got, err := s.Get(ctx, "m1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Name != "Soup" || got.Description != "Hot" || got.Stars == nil || *got.Stars != 3 {
			t.Errorf("Get = %+v, want stored meal", got)
		}
		if got.Photos != nil {
			t.Errorf("Photos = %v, want nil", *got.Photos)
		}

		// Upsert replaces.
		meal.Name = "Stew"
		if err := s.Put(ctx, meal); err != nil {
			t.Fatalf("Put replace: %v", err)
		}
		got, _ = s.Get(ctx, "m1")
		if got.Name != "Stew" {
			t.Errorf("Name after replace = %q, want Stew", got.Name)
		}

		if err := s.Delete(ctx, "m1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get(ctx, "m1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after delete error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "m1"); err != nil {
			t.Errorf("Delete of missing id: %v", err)
		}
	})

	t.Run("scan", func(t *testing.T) {
		s := newStore(t)
		if err := s.CreateTableIfAbsent(ctx); err != nil {
			t.Fatalf("create: %v", err)
		}

		res, err := s.Scan(ctx)
		if err != nil {
			t.Fatalf("Scan empty: %v", err)
		}
		if len(res.Meals) != 0 {
			t.Errorf("empty scan returned %d meals", len(res.Meals))
		}

		for _, id := range []string{"a", "b", "c"} {
			if err := s.Put(ctx, &models.Meal{ID: id, Name: id, Description: id}); err != nil {
				t.Fatalf("Put %s: %v", id, err)
			}
		}
		res, err = s.Scan(ctx)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(res.Meals) != 3 || res.Skipped != 0 {
			t.Errorf("Scan = %d meals, %d skipped; want 3, 0", len(res.Meals), res.Skipped)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newStore(t)
		if err := s.CreateTableIfAbsent(ctx); err != nil {
			t.Fatalf("create: %v", err)
		}
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := s.Get(cctx, "x"); !errors.Is(err, context.Canceled) {
			t.Errorf("Get error = %v, want context.Canceled", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	runConformance(t, func(t *testing.T) MealStore {
		return NewMemoryStore("meals")
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore("meals")
	_ = s.CreateTableIfAbsent(ctx)

	meal := &models.Meal{ID: "1", Name: "Pizza", Description: "Cheesy"}
	if err := s.Put(ctx, meal); err != nil {
		t.Fatal(err)
	}
	meal.Name = "mutated"

	got, _ := s.Get(ctx, "1")
	if got.Name != "Pizza" {
		t.Errorf("stored meal changed through caller pointer: %q", got.Name)
	}
	got.Name = "mutated again"

	again, _ := s.Get(ctx, "1")
	if again.Name != "Pizza" {
		t.Errorf("stored meal changed through returned pointer: %q", again.Name)
	}
}
