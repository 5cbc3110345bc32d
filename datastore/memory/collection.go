/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory datastore for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
)

// Collection is an in-memory implementation of datastore.Collection[T].
type Collection[T any] struct {
	mu   sync.RWMutex
	data map[string]T

	getKeyFunc  func(record T) string
	latencyFunc func(record T) time.Duration
	failureFunc func(record T) error

	creates     atomic.Int64
	upserts     atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

var _ datastore.Collection[struct{}] = (*Collection[struct{}])(nil)

// New creates an empty Collection
func New[T any]() *Collection[T] {
	return &Collection[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets the function extracting a record's identity
func (c *Collection[T]) WithGetKeyFunc(f func(T) string) *Collection[T] {
	c.getKeyFunc = f
	return c
}

// WithLatency delays every write by the duration f returns for its record
func (c *Collection[T]) WithLatency(f func(T) time.Duration) *Collection[T] {
	c.latencyFunc = f
	return c
}

// WithFailure makes a write fail with the error f returns for its record.
// A nil error lets the write through.
func (c *Collection[T]) WithFailure(f func(T) error) *Collection[T] {
	c.failureFunc = f
	return c
}

// Create stores record, failing with a Conflict RemoteError when its key is taken
func (c *Collection[T]) Create(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	c.creates.Add(1)
	return c.write(ctx, record, pk, false)
}

// Upsert stores record, replacing any record with the same key
func (c *Collection[T]) Upsert(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	c.upserts.Add(1)
	return c.write(ctx, record, pk, true)
}

func (c *Collection[T]) write(ctx context.Context, record T, pk *datastore.PartitionKey, replace bool) error {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		peak := c.maxInFlight.Load()
		if n <= peak || c.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	if c.latencyFunc != nil {
		if d := c.latencyFunc(record); d > 0 {
			timer := time.NewTimer(d)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
	if c.failureFunc != nil {
		if err := c.failureFunc(record); err != nil {
			return err
		}
	}

	key := c.extractKey(record)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from record")
	}
	key = CompositeKey(pk, key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; exists && !replace {
		return errors.NewRemoteError(errors.CodeConflict, 409,
			fmt.Sprintf("record with key %q already exists", key), errors.NewDuplicateKeyError("", key))
	}
	c.data[key] = record
	return nil
}

// CompositeKey joins a partition key and an id the way the collection stores them
func CompositeKey(pk *datastore.PartitionKey, id string) string {
	if pk == nil {
		return id
	}
	return fmt.Sprintf("%s|%s", pk, id)
}

// Get retrieves a record by its stored key
func (c *Collection[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.data[key]
	return record, ok
}

// Keys returns the stored keys in sorted order
func (c *Collection[T]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Count returns the number of stored records
func (c *Collection[T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Creates returns how many Create calls were made
func (c *Collection[T]) Creates() int64 {
	return c.creates.Load()
}

// Upserts returns how many Upsert calls were made
func (c *Collection[T]) Upserts() int64 {
	return c.upserts.Load()
}

// InFlight returns the number of writes currently running
func (c *Collection[T]) InFlight() int64 {
	return c.inFlight.Load()
}

// MaxInFlight returns the highest number of writes that ran at the same time
func (c *Collection[T]) MaxInFlight() int64 {
	return c.maxInFlight.Load()
}

// Clear removes all data
func (c *Collection[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]T)
}

// Query returns a fetcher over a snapshot of the collection in key order,
// pageSize records per page.
func (c *Collection[T]) Query(pageSize int) pager.Fetcher[T] {
	if pageSize <= 0 {
		pageSize = 100
	}
	keys := c.Keys()

	c.mu.RLock()
	records := make([]T, 0, len(keys))
	for _, k := range keys {
		records = append(records, c.data[k])
	}
	c.mu.RUnlock()

	return pager.FromPages(chunk(records, pageSize)...)
}

func (c *Collection[T]) extractKey(record T) string {
	if c.getKeyFunc != nil {
		return c.getKeyFunc(record)
	}
	return fmt.Sprintf("key_%v", record)
}

func chunk[T any](items []T, size int) [][]T {
	var pages [][]T
	for start := 0; start < len(items); start += size {
		pages = append(pages, items[start:min(start+size, len(items))])
	}
	return pages
}
