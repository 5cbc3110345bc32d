/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/docstore/datastore"
	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
)

// Collection implements datastore.Collection[T] over Redis string keys.
type Collection[T any] struct {
	rdb       redis.Cmdable
	container string
	idFunc    func(T) string
}

var _ datastore.Collection[struct{}] = (*Collection[struct{}])(nil)

// NewCollection stores records of container, identified by idFunc.
func NewCollection[T any](rdb redis.Cmdable, container string, idFunc func(T) string) *Collection[T] {
	return &Collection[T]{
		rdb:       rdb,
		container: container,
		idFunc:    idFunc,
	}
}

// Key returns the Redis key of id.
func (c *Collection[T]) Key(id string, pk *datastore.PartitionKey) string {
	if pk == nil {
		return fmt.Sprintf("%s:%s", c.container, id)
	}
	return fmt.Sprintf("%s:{%s}:%s", c.container, pk, id)
}

// Create stores record unless its key exists.
func (c *Collection[T]) Create(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	key, data, err := c.encode(record, pk)
	if err != nil {
		return err
	}
	created, err := c.rdb.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", translateError(err))
	}
	if !created {
		return c.conflict(key)
	}
	return nil
}

// conflict reports a SETNX that found key taken.
func (c *Collection[T]) conflict(key string) error {
	return storeerrors.NewRemoteError(storeerrors.CodeConflict, http.StatusConflict,
		fmt.Sprintf("key %q already exists", key), storeerrors.NewDuplicateKeyError(c.container, key))
}

// Upsert stores record, overwriting any previous value.
func (c *Collection[T]) Upsert(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	key, data, err := c.encode(record, pk)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", translateError(err))
	}
	return nil
}

func (c *Collection[T]) encode(record T, pk *datastore.PartitionKey) (string, []byte, error) {
	id := c.idFunc(record)
	if id == "" {
		return "", nil, storeerrors.NewValidationError("id", "record has no id")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", nil, fmt.Errorf("marshal record: %w", err)
	}
	return c.Key(id, pk), data, nil
}

// Scan returns a fetcher over every record of the container. SCAN may
// report a key more than once when the keyspace changes during the listing.
func (c *Collection[T]) Scan(pageSize int64) pager.Fetcher[T] {
	return NewScanFetcher[T](c.rdb, c.container+":*", pageSize)
}

// ScanFetcher pages through the keys matching a pattern and loads their values.
type ScanFetcher[T any] struct {
	rdb     redis.Cmdable
	match   string
	count   int64
	cursor  uint64
	started bool
}

var _ pager.Fetcher[struct{}] = (*ScanFetcher[struct{}])(nil)

// NewScanFetcher returns a fetcher over the keys matching match.
func NewScanFetcher[T any](rdb redis.Cmdable, match string, count int64) *ScanFetcher[T] {
	return &ScanFetcher[T]{rdb: rdb, match: match, count: count}
}

// HasMore reports whether the SCAN cursor has not yet returned to 0.
func (f *ScanFetcher[T]) HasMore() bool {
	return !f.started || f.cursor != 0
}

// FetchNext runs one SCAN step and decodes the values found.
func (f *ScanFetcher[T]) FetchNext(ctx context.Context) (*pager.Page[T], error) {
	keys, cursor, err := f.rdb.Scan(ctx, f.cursor, f.match, f.count).Result()
	if err != nil {
		return nil, fmt.Errorf("redis scan: %w", translateError(err))
	}
	f.started = true
	f.cursor = cursor

	page := &pager.Page[T]{Continuation: cursor}
	if len(keys) == 0 {
		return page, nil
	}

	values, err := f.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", translateError(err))
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// deleted between SCAN and MGET
			continue
		}
		var record T
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		page.Items = append(page.Items, record)
	}
	return page, nil
}
