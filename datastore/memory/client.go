/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
)

// Client is an in-memory catalog of databases and containers.
type Client struct {
	mu         sync.RWMutex
	databases  []string
	containers map[string][]string
	pageSize   int
	listErr    error

	databaseListings  atomic.Int64
	containerListings atomic.Int64
	fetches           atomic.Int64
}

var _ datastore.Client = (*Client)(nil)

// NewClient creates an empty catalog
func NewClient() *Client {
	return &Client{
		containers: make(map[string][]string),
		pageSize:   10,
	}
}

// WithPageSize sets how many ids each listing page holds
func (c *Client) WithPageSize(n int) *Client {
	if n > 0 {
		c.pageSize = n
	}
	return c
}

// WithListError makes every page fetch fail with err
func (c *Client) WithListError(err error) *Client {
	c.listErr = err
	return c
}

// CreateDatabase adds a database. Creating an existing database is a no-op.
func (c *Client) CreateDatabase(name string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.databases, name) {
		c.databases = append(c.databases, name)
	}
	return c
}

// CreateContainer adds a container to database, creating the database if needed
func (c *Client) CreateContainer(database, container string) *Client {
	c.CreateDatabase(database)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.containers[database], container) {
		c.containers[database] = append(c.containers[database], container)
	}
	return c
}

// DatabaseIDs lists the database names
func (c *Client) DatabaseIDs() pager.Fetcher[string] {
	c.databaseListings.Add(1)
	c.mu.RLock()
	ids := slices.Clone(c.databases)
	c.mu.RUnlock()
	return c.listing(ids)
}

// ContainerIDs lists the containers of database. An unknown database lists
// nothing, like a remote store would report an empty feed.
func (c *Client) ContainerIDs(database string) pager.Fetcher[string] {
	c.containerListings.Add(1)
	c.mu.RLock()
	ids := slices.Clone(c.containers[database])
	c.mu.RUnlock()
	return c.listing(ids)
}

func (c *Client) listing(ids []string) pager.Fetcher[string] {
	pages := chunk(ids, c.pageSize)
	next := 0
	return pager.Func(func(ctx context.Context) (*pager.Page[string], bool, error) {
		c.fetches.Add(1)
		if c.listErr != nil {
			return nil, false, c.listErr
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		if next >= len(pages) {
			return &pager.Page[string]{}, false, nil
		}
		page := &pager.Page[string]{Items: pages[next], Continuation: next + 1}
		next++
		return page, next < len(pages), nil
	})
}

// DatabaseListings returns how many times DatabaseIDs was called
func (c *Client) DatabaseListings() int64 {
	return c.databaseListings.Load()
}

// ContainerListings returns how many times ContainerIDs was called
func (c *Client) ContainerListings() int64 {
	return c.containerListings.Load()
}

// Fetches returns how many listing pages were requested
func (c *Client) Fetches() int64 {
	return c.fetches.Load()
}

// ErrUnavailable is a ready-made listing failure for tests
var ErrUnavailable = errors.NewRemoteError(errors.CodeServiceUnavailable, 503, "catalog unavailable", nil)
