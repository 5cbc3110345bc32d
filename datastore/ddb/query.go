/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
	"github.com/suparena/docstore/registry"
	"github.com/suparena/docstore/storagemodels"
)

type avMap = map[string]types.AttributeValue

// pageCall runs one request starting after startKey and returns the page
// together with the key the next request resumes from.
type pageCall func(ctx context.Context, startKey avMap) (items []avMap, lastKey avMap, err error)

// ItemFetcher pages through a Query or Scan using LastEvaluatedKey.
type ItemFetcher[T any] struct {
	call     pageCall
	startKey avMap
	done     bool
}

var _ pager.Fetcher[struct{}] = (*ItemFetcher[struct{}])(nil)

// NewQueryFetcher returns a fetcher for a Query on tableName. params must carry
// a key condition; ExclusiveStartKey resumes a previous listing.
func NewQueryFetcher[T any](api API, tableName string, params *storagemodels.QueryParams) *ItemFetcher[T] {
	if params == nil || params.KeyConditionExpression == nil {
		return &ItemFetcher[T]{call: func(context.Context, avMap) ([]avMap, avMap, error) {
			return nil, nil, storeerrors.NewValidationError("KeyConditionExpression", "query requires a key condition")
		}}
	}
	return &ItemFetcher[T]{
		startKey: params.ExclusiveStartKey,
		call: func(ctx context.Context, startKey avMap) ([]avMap, avMap, error) {
			out, err := api.Query(ctx, &sdk.QueryInput{
				TableName:                 aws.String(tableName),
				KeyConditionExpression:    params.KeyConditionExpression,
				FilterExpression:          params.FilterExpression,
				ExpressionAttributeNames:  params.ExpressionAttributeNames,
				ExpressionAttributeValues: params.ExpressionAttributeValues,
				IndexName:                 params.IndexName,
				Limit:                     params.Limit,
				ScanIndexForward:          params.ScanIndexForward,
				ConsistentRead:            params.ConsistentRead,
				ExclusiveStartKey:         startKey,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("query error: %w", translateError(err))
			}
			return out.Items, out.LastEvaluatedKey, nil
		},
	}
}

// NewScanFetcher returns a fetcher for a Scan of tableName. params may be nil.
func NewScanFetcher[T any](api API, tableName string, params *storagemodels.QueryParams) *ItemFetcher[T] {
	if params == nil {
		params = &storagemodels.QueryParams{}
	}
	return &ItemFetcher[T]{
		startKey: params.ExclusiveStartKey,
		call: func(ctx context.Context, startKey avMap) ([]avMap, avMap, error) {
			out, err := api.Scan(ctx, &sdk.ScanInput{
				TableName:                 aws.String(tableName),
				FilterExpression:          params.FilterExpression,
				ExpressionAttributeNames:  params.ExpressionAttributeNames,
				ExpressionAttributeValues: params.ExpressionAttributeValues,
				IndexName:                 params.IndexName,
				Limit:                     params.Limit,
				ConsistentRead:            params.ConsistentRead,
				ExclusiveStartKey:         startKey,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("scan error: %w", translateError(err))
			}
			return out.Items, out.LastEvaluatedKey, nil
		},
	}
}

// HasMore reports whether DynamoDB returned a LastEvaluatedKey for the last page.
func (f *ItemFetcher[T]) HasMore() bool {
	return !f.done
}

// FetchNext requests the next page and decodes its items into T.
func (f *ItemFetcher[T]) FetchNext(ctx context.Context) (*pager.Page[T], error) {
	items, lastKey, err := f.call(ctx, f.startKey)
	if err != nil {
		return nil, err
	}

	page := &pager.Page[T]{Items: make([]T, 0, len(items))}
	for _, raw := range items {
		record, err := decodeItem[T](raw)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, record)
	}

	if len(lastKey) == 0 {
		f.done = true
	} else {
		page.Continuation = maps.Clone(lastKey)
	}
	f.startKey = lastKey
	return page, nil
}

// decodeItem unmarshals raw into T. When that fails and the item names its
// EntityType, the unmarshal function registered for that type is tried.
func decodeItem[T any](raw avMap) (T, error) {
	var result T

	var entityType string
	if attr, ok := raw[EntityTypeAttribute]; ok {
		if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
			return result, fmt.Errorf("failed to unmarshal EntityType: %w", err)
		}
	}

	err := attributevalue.UnmarshalMap(raw, &result)
	if err == nil || entityType == "" {
		if err != nil {
			return result, fmt.Errorf("failed to unmarshal item to type %T: %w", result, err)
		}
		return result, nil
	}

	unmarshalFn, regErr := registry.GetUnmarshalFunc(entityType)
	if regErr != nil {
		return result, fmt.Errorf("failed to unmarshal item to type %T: %w", result, err)
	}
	obj, fnErr := unmarshalFn(raw)
	if fnErr != nil {
		return result, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", entityType, fnErr)
	}
	switch typed := obj.(type) {
	case T:
		return typed, nil
	case *T:
		return *typed, nil
	}
	return result, fmt.Errorf("EntityType %q decoded to %T, not %T", entityType, obj, result)
}
