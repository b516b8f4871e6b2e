// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/models"
)

// Key layout:
//
//	table:<table>        marker written by CreateTableIfAbsent
//	meal:<table>:<id>    JSON-encoded models.Meal
const (
	tableKeyPrefix = "table:"
	mealKeyPrefix  = "meal:"
)

// BadgerStore persists meals in an embedded BadgerDB.
type BadgerStore struct {
	db    *badger.DB
	table string
}

// OpenBadgerStore opens (or creates) a BadgerDB at path. An empty path
// opens an in-memory database.
func OpenBadgerStore(path, table string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.SyncWrites = true
	opts.Compression = options.Snappy
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().Str("path", path).Str("table", table).Msg("Badger meal store opened")
	return &BadgerStore{db: db, table: table}, nil
}

func (s *BadgerStore) tableKey() []byte {
	return []byte(tableKeyPrefix + s.table)
}

func (s *BadgerStore) mealPrefix() []byte {
	return []byte(mealKeyPrefix + s.table + ":")
}

func (s *BadgerStore) mealKey(id string) []byte {
	return append(s.mealPrefix(), id...)
}

// CreateTableIfAbsent writes the table marker.
func (s *BadgerStore) CreateTableIfAbsent(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(s.tableKey())
		if err == nil {
			return ErrTableExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check table marker: %w", err)
		}
		return txn.Set(s.tableKey(), []byte{1})
	})
}

// requireTable must be called inside a transaction.
func (s *BadgerStore) requireTable(txn *badger.Txn) error {
	if _, err := txn.Get(s.tableKey()); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTableNotFound
		}
		return err
	}
	return nil
}

// Get reads and decodes one meal.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var meal models.Meal
	err := s.db.View(func(txn *badger.Txn) error {
		if err := s.requireTable(txn); err != nil {
			return err
		}
		item, err := txn.Get(s.mealKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meal)
		})
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// Put encodes and writes meal.
func (s *BadgerStore) Put(ctx context.Context, meal *models.Meal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(meal)
	if err != nil {
		return fmt.Errorf("marshal meal: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := s.requireTable(txn); err != nil {
			return err
		}
		return txn.Set(s.mealKey(meal.ID), data)
	})
}

// Delete removes id. Badger deletes of absent keys succeed.
func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := s.requireTable(txn); err != nil {
			return err
		}
		return txn.Delete(s.mealKey(id))
	})
}

// Scan iterates the table prefix. Values that fail to decode are counted in
// Skipped instead of failing the scan.
func (s *BadgerStore) Scan(ctx context.Context) (*ScanResult, error) {
	result := &ScanResult{Meals: []*models.Meal{}}

	err := s.db.View(func(txn *badger.Txn) error {
		if err := s.requireTable(txn); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.mealPrefix()
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var meal models.Meal
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meal)
			})
			if err != nil {
				logging.Debug().Err(err).Str("key", string(it.Item().Key())).Msg("Skipping undecodable meal")
				result.Skipped++
				continue
			}
			result.Meals = append(result.Meals, &meal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
