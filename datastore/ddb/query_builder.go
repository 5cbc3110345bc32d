/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
	"github.com/suparena/docstore/storagemodels"
)

// QueryBuilder provides a fluent interface for building key-condition queries
// on a collection's table or one of its GSIs.
type QueryBuilder[T any] struct {
	coll       *Collection[T]
	indexName  string
	pkValue    string
	skValue    string
	skValue2   string
	skOperator string // "=", "begins_with", ">", "<", "BETWEEN"
	filters    []string
	filterVals map[string]types.AttributeValue
	limit      *int32
	descending bool
}

// QueryBuilder starts a query on the table's primary key.
func (c *Collection[T]) QueryBuilder() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		coll:       c,
		filterVals: make(map[string]types.AttributeValue),
	}
}

// OnIndex switches the query to a GSI listed in DefaultGSIConfigs
func (q *QueryBuilder[T]) OnIndex(indexName string) *QueryBuilder[T] {
	q.indexName = indexName
	return q
}

// WithPartitionKey sets the partition key value
func (q *QueryBuilder[T]) WithPartitionKey(value string) *QueryBuilder[T] {
	q.pkValue = value
	return q
}

// WithSortKey sets the sort key value with equals operator
func (q *QueryBuilder[T]) WithSortKey(value string) *QueryBuilder[T] {
	q.skValue, q.skOperator = value, "="
	return q
}

// WithSortKeyPrefix sets the sort key to use begins_with operator
func (q *QueryBuilder[T]) WithSortKeyPrefix(prefix string) *QueryBuilder[T] {
	q.skValue, q.skOperator = prefix, "begins_with"
	return q
}

// WithSortKeyGreaterThan sets the sort key to use > operator
func (q *QueryBuilder[T]) WithSortKeyGreaterThan(value string) *QueryBuilder[T] {
	q.skValue, q.skOperator = value, ">"
	return q
}

// WithSortKeyLessThan sets the sort key to use < operator
func (q *QueryBuilder[T]) WithSortKeyLessThan(value string) *QueryBuilder[T] {
	q.skValue, q.skOperator = value, "<"
	return q
}

// WithSortKeyBetween sets the sort key to use BETWEEN operator
func (q *QueryBuilder[T]) WithSortKeyBetween(start, end string) *QueryBuilder[T] {
	q.skValue, q.skValue2, q.skOperator = start, end, "BETWEEN"
	return q
}

// WithFilter adds a filter expression
func (q *QueryBuilder[T]) WithFilter(expression string, values map[string]types.AttributeValue) *QueryBuilder[T] {
	q.filters = append(q.filters, expression)
	maps.Copy(q.filterVals, values)
	return q
}

// WithLimit sets the page size
func (q *QueryBuilder[T]) WithLimit(limit int32) *QueryBuilder[T] {
	q.limit = aws.Int32(limit)
	return q
}

// Descending reverses the sort key order
func (q *QueryBuilder[T]) Descending() *QueryBuilder[T] {
	q.descending = true
	return q
}

// Build constructs the final query parameters
func (q *QueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	if q.pkValue == "" {
		return nil, storeerrors.NewValidationError("partitionKey", "partition key value is required")
	}

	pkName, skName := q.coll.pkAttr, "SK"
	params := &storagemodels.QueryParams{
		ExpressionAttributeNames:  map[string]string{"#pk": pkName},
		ExpressionAttributeValues: map[string]types.AttributeValue{":pk": &types.AttributeValueMemberS{Value: q.pkValue}},
		Limit:                     q.limit,
	}
	if q.indexName != "" {
		gsi, ok := GetGSIConfig(q.indexName)
		if !ok {
			return nil, storeerrors.NewValidationError("index", fmt.Sprintf("unknown index %q", q.indexName))
		}
		pkName, skName = gsi.PartitionKeyName, gsi.SortKeyName
		params.ExpressionAttributeNames["#pk"] = pkName
		params.IndexName = aws.String(gsi.IndexName)
	}

	keyConditions := []string{"#pk = :pk"}
	if q.skOperator != "" {
		params.ExpressionAttributeNames["#sk"] = skName
		params.ExpressionAttributeValues[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
		switch q.skOperator {
		case "begins_with":
			keyConditions = append(keyConditions, "begins_with(#sk, :sk)")
		case "BETWEEN":
			keyConditions = append(keyConditions, "#sk BETWEEN :sk AND :sk2")
			params.ExpressionAttributeValues[":sk2"] = &types.AttributeValueMemberS{Value: q.skValue2}
		default:
			keyConditions = append(keyConditions, fmt.Sprintf("#sk %s :sk", q.skOperator))
		}
	}
	params.KeyConditionExpression = aws.String(strings.Join(keyConditions, " AND "))

	if len(q.filters) > 0 {
		params.FilterExpression = aws.String(strings.Join(q.filters, " AND "))
		maps.Copy(params.ExpressionAttributeValues, q.filterVals)
	}
	if q.descending {
		params.ScanIndexForward = aws.Bool(false)
	}
	return params, nil
}

// Fetcher builds the query and returns a fetcher paging through its results.
// A build error is reported by the first fetch.
func (q *QueryBuilder[T]) Fetcher() pager.Fetcher[T] {
	params, err := q.Build()
	if err != nil {
		return pager.Once(func(context.Context) ([]T, error) { return nil, err })
	}
	return q.coll.Query(params)
}
