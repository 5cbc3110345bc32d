/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/suparena/docstore/datastore"
)

// Clients is a thread-safe set of named catalog clients, one per account or
// cluster an application talks to.
type Clients struct {
	mu      sync.RWMutex
	clients map[string]datastore.Client
}

// NewClients creates an empty set.
func NewClients() *Clients {
	return &Clients{
		clients: make(map[string]datastore.Client),
	}
}

// Register stores client under name.
func (c *Clients) Register(name string, client datastore.Client) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.clients[name]; exists {
		return fmt.Errorf("client %q already registered", name)
	}
	c.clients[name] = client
	return nil
}

// Get retrieves the client registered under name.
func (c *Clients) Get(name string) (datastore.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	client, exists := c.clients[name]
	if !exists {
		return nil, fmt.Errorf("client %q not found", name)
	}
	return client, nil
}

// Names returns the registered names in sorted order.
func (c *Clients) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.clients))
	for name := range c.clients {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Locate returns the names of the clients that list database, in name order.
// It stops at the first listing error.
func (c *Clients) Locate(ctx context.Context, database string) ([]string, error) {
	var found []string
	for _, name := range c.Names() {
		client, err := c.Get(name)
		if err != nil {
			continue
		}
		ok, err := DatabaseExists(ctx, client, database)
		if err != nil {
			return nil, fmt.Errorf("client %s: %w", name, err)
		}
		if ok {
			found = append(found, name)
		}
	}
	return found, nil
}
