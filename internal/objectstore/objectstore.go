// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// Package objectstore manages the bucket that holds meal photos.
package objectstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tomtom215/refeed/internal/logging"
)

// BucketStore is the object storage capability.
type BucketStore interface {
	BucketExists(ctx context.Context, name string) (bool, error)
	CreateBucket(ctx context.Context, name string) error
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// EnsureBucket creates name unless it already exists.
func EnsureBucket(ctx context.Context, objects BucketStore, name string) error {
	exists, err := objects.BucketExists(ctx, name)
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	if exists {
		logging.Info().Str("bucket", name).Msg("Photo bucket present")
		return nil
	}

	logging.Info().Str("bucket", name).Msg("Creating photo bucket")
	if err := objects.CreateBucket(ctx, name); err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	return nil
}

// MemoryBucketStore keeps buckets and keys in memory.
type MemoryBucketStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemoryBucketStore() *MemoryBucketStore {
	return &MemoryBucketStore{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryBucketStore) BucketExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buckets[name]
	return ok, nil
}

func (m *MemoryBucketStore) CreateBucket(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[name]; ok {
		return fmt.Errorf("bucket %s already exists", name)
	}
	m.buckets[name] = make(map[string][]byte)
	return nil
}

// PutObject stores data under key. Used by tests to populate buckets.
func (m *MemoryBucketStore) PutObject(bucket, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	b[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBucketStore) ListKeys(_ context.Context, bucket, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
