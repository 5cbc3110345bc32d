/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docstore/datastore"
	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
	"github.com/suparena/docstore/registry"
	"github.com/suparena/docstore/storagemodels"
)

const (
	// DefaultPartitionKeyAttribute is the partition key of single-table designs.
	DefaultPartitionKeyAttribute = "PK"
	// EntityTypeAttribute names the attribute carrying a record's registered type.
	EntityTypeAttribute = "EntityType"
)

// Collection implements datastore.Collection[T] on top of one DynamoDB table.
//
// Key attributes (PK, SK, GSI keys) are expanded from the index map
// registered for T, so records need not carry them as fields.
type Collection[T any] struct {
	api        API
	tableName  string
	pkAttr     string
	entityType string
	indexMap   map[string]string
}

var _ datastore.Collection[struct{}] = (*Collection[struct{}])(nil)

// CollectionOption configures a Collection.
type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	pkAttr     string
	entityType string
	indexMap   map[string]string
}

// WithPartitionKeyAttribute sets the partition key attribute name. Default "PK".
func WithPartitionKeyAttribute(name string) CollectionOption {
	return func(o *collectionOptions) {
		o.pkAttr = name
	}
}

// WithEntityType stores name in the EntityType attribute of every written item.
func WithEntityType(name string) CollectionOption {
	return func(o *collectionOptions) {
		o.entityType = name
	}
}

// WithIndexMap sets the key templates explicitly instead of reading the registry.
func WithIndexMap(indexMap map[string]string) CollectionOption {
	return func(o *collectionOptions) {
		o.indexMap = indexMap
	}
}

// NewCollection binds T to tableName.
func NewCollection[T any](api API, tableName string, opts ...CollectionOption) *Collection[T] {
	o := collectionOptions{pkAttr: DefaultPartitionKeyAttribute}
	for _, opt := range opts {
		opt(&o)
	}
	if o.indexMap == nil {
		o.indexMap, _ = registry.GetIndexMap[T]()
	}
	return &Collection[T]{
		api:        api,
		tableName:  tableName,
		pkAttr:     o.pkAttr,
		entityType: o.entityType,
		indexMap:   o.indexMap,
	}
}

// TableName returns the table the collection writes to.
func (c *Collection[T]) TableName() string {
	return c.tableName
}

// Create puts record unless an item with the same partition key already exists.
func (c *Collection[T]) Create(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	item, err := c.marshal(record, pk)
	if err != nil {
		return err
	}
	return c.put(ctx, &sdk.PutItemInput{
		TableName:                aws.String(c.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": c.pkAttr},
	})
}

// Upsert puts record, replacing any existing item with the same key.
func (c *Collection[T]) Upsert(ctx context.Context, record T, pk *datastore.PartitionKey) error {
	item, err := c.marshal(record, pk)
	if err != nil {
		return err
	}
	return c.put(ctx, &sdk.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
}

func (c *Collection[T]) put(ctx context.Context, input *sdk.PutItemInput) error {
	if _, err := c.api.PutItem(ctx, input); err != nil {
		return fmt.Errorf("PutItem failed: %w", translateError(err))
	}
	return nil
}

func (c *Collection[T]) marshal(record T, pk *datastore.PartitionKey) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	for k, v := range expandMacros(c.indexMap, item) {
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	if pk != nil {
		item[c.pkAttr] = &types.AttributeValueMemberS{Value: pk.String()}
	}
	if c.entityType != "" {
		item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: c.entityType}
	}

	if v, ok := item[c.pkAttr]; !ok || scalarString(v) == "" {
		return nil, fmt.Errorf("%w: %T has no %s attribute", storeerrors.ErrNoIndexMap, record, c.pkAttr)
	}
	return item, nil
}

// Query returns a fetcher paging through the query described by params.
func (c *Collection[T]) Query(params *storagemodels.QueryParams) pager.Fetcher[T] {
	return NewQueryFetcher[T](c.api, c.tableName, params)
}

// Scan returns a fetcher paging through the whole table.
func (c *Collection[T]) Scan(params *storagemodels.QueryParams) pager.Fetcher[T] {
	return NewScanFetcher[T](c.api, c.tableName, params)
}
