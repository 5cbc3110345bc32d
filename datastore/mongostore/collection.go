/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/suparena/docstore/datastore"
	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
)

// DefaultPartitionField holds the partition key of a document when one is given.
const DefaultPartitionField = "_pk"

// Connect opens a client for uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to ping MongoDB: %w", translateError(err))
	}
	return client, nil
}

// Collection implements datastore.Collection[T] on a MongoDB collection.
// Records are identified by their _id field.
type Collection[T any] struct {
	coll           *mongo.Collection
	partitionField string
}

var _ datastore.Collection[struct{}] = (*Collection[struct{}])(nil)

// CollectionOption configures a Collection.
type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	partitionField string
}

// WithPartitionField names the field the partition key is stored in
func WithPartitionField(name string) CollectionOption {
	return func(o *collectionOptions) {
		o.partitionField = name
	}
}

// NewCollection wraps coll.
func NewCollection[T any](coll *mongo.Collection, opts ...CollectionOption) *Collection[T] {
	o := collectionOptions{partitionField: DefaultPartitionField}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{
		coll:           coll,
		partitionField: o.partitionField,
	}
}

// Create inserts record. A record whose _id exists fails with a Conflict RemoteError.
func (c *Collection[T]) Create(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	doc, err := c.document(record, pk)
	if err != nil {
		return err
	}
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("InsertOne failed: %w", translateError(err))
	}
	return nil
}

// Upsert replaces the document with record's _id, inserting it when missing.
func (c *Collection[T]) Upsert(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	doc, err := c.document(record, pk)
	if err != nil {
		return err
	}
	id, ok := lookup(doc, "_id")
	if !ok {
		return storeerrors.NewValidationError("_id", fmt.Sprintf("%T has no _id", record))
	}
	_, err = c.coll.ReplaceOne(ctx, c.filter(id, pk), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ReplaceOne failed: %w", translateError(err))
	}
	return nil
}

// Find returns a fetcher over the documents matching filter, pageSize per page.
func (c *Collection[T]) Find(filter any, pageSize int, opts ...*options.FindOptions) pager.Fetcher[T] {
	if filter == nil {
		filter = bson.D{}
	}
	return NewCursorFetcher[T](pageSize, func(ctx context.Context) (*mongo.Cursor, error) {
		findOpts := append([]*options.FindOptions{options.Find().SetBatchSize(int32(pageSize))}, opts...)
		return c.coll.Find(ctx, filter, findOpts...)
	})
}

func (c *Collection[T]) filter(id any, pk *datastore.PartitionKey) bson.D {
	filter := bson.D{{Key: "_id", Value: id}}
	if pk != nil {
		filter = append(filter, bson.E{Key: c.partitionField, Value: pk.Value})
	}
	return filter
}

// document converts record to an ordered document and stamps the partition key.
func (c *Collection[T]) document(record T, pk *datastore.PartitionKey) (bson.D, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	if pk == nil {
		return doc, nil
	}
	for i := range doc {
		if doc[i].Key == c.partitionField {
			doc[i].Value = pk.Value
			return doc, nil
		}
	}
	return append(doc, bson.E{Key: c.partitionField, Value: pk.Value}), nil
}

func lookup(doc bson.D, key string) (any, bool) {
	for _, e := range doc {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
