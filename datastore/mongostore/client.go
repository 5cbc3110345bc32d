/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/pager"
)

// Client lists the databases and collections of a MongoDB deployment.
type Client struct {
	client   *mongo.Client
	pageSize int
}

var _ datastore.Client = (*Client)(nil)

// NewClient wraps client. pageSize bounds the collection listing pages.
func NewClient(client *mongo.Client, pageSize int) *Client {
	return &Client{client: client, pageSize: pageSize}
}

// DatabaseIDs lists the database names. The server returns them in one reply.
func (c *Client) DatabaseIDs() pager.Fetcher[string] {
	return pager.Once(func(ctx context.Context) ([]string, error) {
		names, err := c.client.ListDatabaseNames(ctx, bson.D{})
		if err != nil {
			return nil, translateError(err)
		}
		return names, nil
	})
}

type collectionSpec struct {
	Name string `bson:"name"`
}

// ContainerIDs lists the collection names of database through a listCollections cursor.
func (c *Client) ContainerIDs(database string) pager.Fetcher[string] {
	specs := NewCursorFetcher[collectionSpec](c.pageSize, func(ctx context.Context) (*mongo.Cursor, error) {
		return c.client.Database(database).ListCollections(ctx, bson.D{},
			options.ListCollections().SetNameOnly(true))
	})
	return pager.Map[collectionSpec, string](specs, func(s collectionSpec) string { return s.Name })
}

// OpenCollection binds T to collection container of database.
func OpenCollection[T any](c *Client, database, container string, opts ...CollectionOption) *Collection[T] {
	return NewCollection[T](c.client.Database(database).Collection(container), opts...)
}
