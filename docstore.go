/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"

	"github.com/suparena/docstore/bulk"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/pager"
	"github.com/suparena/docstore/probe"
)

// AsSequence wraps a page fetcher into a lazy record sequence.
func AsSequence[T any](f pager.Fetcher[T], opts ...pager.Option) *pager.Sequence[T] {
	return pager.New(f, opts...)
}

// BulkCreate creates every record concurrently. Records that already exist
// are reported as failures.
func BulkCreate[T any](ctx context.Context, coll datastore.Collection[T], records []T, pk *datastore.PartitionKey, opts ...bulk.Option) bulk.Result {
	return bulk.NewExecutor(coll, opts...).Create(ctx, records, pk)
}

// BulkUpsert creates or replaces every record concurrently.
func BulkUpsert[T any](ctx context.Context, coll datastore.Collection[T], records []T, pk *datastore.PartitionKey, opts ...bulk.Option) bulk.Result {
	return bulk.NewExecutor(coll, opts...).Upsert(ctx, records, pk)
}

// BulkUpdate writes every record with upsert semantics.
func BulkUpdate[T any](ctx context.Context, coll datastore.Collection[T], records []T, pk *datastore.PartitionKey, opts ...bulk.Option) bulk.Result {
	return bulk.NewExecutor(coll, opts...).Update(ctx, records, pk)
}

// DatabaseExists reports whether client lists a database named name.
func DatabaseExists(ctx context.Context, client datastore.Client, name string) (bool, error) {
	return probe.DatabaseExists(ctx, client, name)
}

// ContainerExists reports whether container exists in database.
func ContainerExists(ctx context.Context, client datastore.Client, database, container string) (bool, error) {
	return probe.ContainerExists(ctx, client, database, container)
}
