/*
Package storagemodels defines the data structures used throughout docstore.

Key Types:

QueryParams:
Parameters for a paged DynamoDB query or scan:

	params := &QueryParams{
	    KeyConditionExpression: aws.String("PK = :pk"),
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "USER#123"},
	    },
	    FilterExpression: aws.String("Status = :status"),
	    IndexName:        aws.String("GSI1"),
	    Limit:            aws.Int32(100),
	}

StreamResult:
Results from streaming a paged sequence over a channel:

	type StreamResult[T any] struct {
	    Item  T          // The record
	    Error error      // Terminal error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
