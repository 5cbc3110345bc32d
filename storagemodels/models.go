/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryParams defines parameters for a paged DynamoDB Query or Scan.
// The table comes from the collection the fetcher is created on.
type QueryParams struct {
	// KeyConditionExpression is the primary condition for the query.
	// Scans ignore it.
	KeyConditionExpression *string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeNames maps name placeholders (#f) to attribute names.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit defines an optional limit per page.
	Limit *int32
	// ExclusiveStartKey resumes from a previous page's continuation.
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order.
	// If false, traversal is in descending order.
	ScanIndexForward *bool
	// ConsistentRead requests strongly consistent reads.
	ConsistentRead *bool
}
