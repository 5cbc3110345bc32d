/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package probe answers whether a database or container exists by listing the
// store's catalog through a lazy sequence.
package probe

import (
	"context"
	"slices"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/pager"
)

// DatabaseExists reports whether client lists a database named name. The
// whole listing is read on every call and names are compared exactly.
// Listing errors are returned unchanged.
func DatabaseExists(ctx context.Context, client datastore.Client, name string) (bool, error) {
	return contains(ctx, client.DatabaseIDs(), name)
}

// ContainerExists reports whether container exists inside database. When the
// database is absent the container listing is never requested.
func ContainerExists(ctx context.Context, client datastore.Client, database, container string) (bool, error) {
	exists, err := DatabaseExists(ctx, client, database)
	if err != nil || !exists {
		return false, err
	}
	return contains(ctx, client.ContainerIDs(database), container)
}

func contains(ctx context.Context, ids pager.Fetcher[string], name string) (bool, error) {
	all, err := pager.Collect(ctx, ids)
	if err != nil {
		return false, err
	}
	return slices.Contains(all, name), nil
}
