/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"

	"github.com/suparena/docstore/pager"
)

// PartitionKey routes a write to a logical partition of a container.
// A nil *PartitionKey means the store's default routing.
type PartitionKey struct {
	Value any
}

// NewPartitionKey returns a partition key holding v.
func NewPartitionKey(v any) *PartitionKey {
	return &PartitionKey{Value: v}
}

func (pk *PartitionKey) String() string {
	if pk == nil {
		return ""
	}
	return fmt.Sprint(pk.Value)
}

// Collection is a single remote container holding records of type T.
type Collection[T any] interface {
	// Create inserts record and fails if a record with the same identity exists.
	Create(ctx context.Context, record T, pk *PartitionKey) error

	// Upsert inserts record or replaces the existing record with the same identity.
	Upsert(ctx context.Context, record T, pk *PartitionKey) error
}

// Client enumerates the databases of a remote store and the containers inside them.
type Client interface {
	DatabaseIDs() pager.Fetcher[string]

	ContainerIDs(database string) pager.Fetcher[string]
}
