/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/pager"
)

// CatalogPrefix prefixes the sets listing the containers of each database.
const CatalogPrefix = "docstore:containers:"

// Client lists logical databases and the containers registered in them.
type Client struct {
	rdb      redis.Cmdable
	pageSize int64
}

var _ datastore.Client = (*Client)(nil)

// NewClient wraps rdb. pageSize is the COUNT hint of SSCAN.
func NewClient(rdb redis.Cmdable, pageSize int64) *Client {
	return &Client{rdb: rdb, pageSize: pageSize}
}

// RegisterContainer records container as part of database.
func (c *Client) RegisterContainer(ctx context.Context, database, container string) error {
	if err := c.rdb.SAdd(ctx, CatalogPrefix+database, container).Err(); err != nil {
		return fmt.Errorf("redis sadd: %w", translateError(err))
	}
	return nil
}

// DatabaseIDs lists the logical database indexes "0" to "<databases>-1".
func (c *Client) DatabaseIDs() pager.Fetcher[string] {
	return pager.Once(func(ctx context.Context) ([]string, error) {
		cfg, err := c.rdb.ConfigGet(ctx, "databases").Result()
		if err != nil {
			return nil, fmt.Errorf("redis config get: %w", translateError(err))
		}
		n, err := strconv.Atoi(cfg["databases"])
		if err != nil {
			return nil, fmt.Errorf("parse databases setting %q: %w", cfg["databases"], err)
		}
		ids := make([]string, n)
		for i := range ids {
			ids[i] = strconv.Itoa(i)
		}
		return ids, nil
	})
}

// ContainerIDs lists the containers registered for database, one SSCAN step per page.
func (c *Client) ContainerIDs(database string) pager.Fetcher[string] {
	key := CatalogPrefix + database
	var cursor uint64
	return pager.Func(func(ctx context.Context) (*pager.Page[string], bool, error) {
		members, next, err := c.rdb.SScan(ctx, key, cursor, "", c.pageSize).Result()
		if err != nil {
			return nil, false, fmt.Errorf("redis sscan: %w", translateError(err))
		}
		cursor = next
		return &pager.Page[string]{Items: members, Continuation: next}, next != 0, nil
	})
}

// OpenCollection binds T to container, registering it in database's catalog.
func OpenCollection[T any](ctx context.Context, c *Client, database, container string, idFunc func(T) string) (*Collection[T], error) {
	if err := c.RegisterContainer(ctx, database, container); err != nil {
		return nil, err
	}
	return NewCollection(c.rdb, container, idFunc), nil
}
