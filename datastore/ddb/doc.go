/*
Package ddb provides the DynamoDB backend of docstore.

Collection[T] implements datastore.Collection[T] against a single table:
  - Create is a PutItem guarded by attribute_not_exists on the partition key
  - Upsert is an unconditional PutItem
  - Macro-based key expansion from the registry index map (e.g., "USER#{ID}")
  - Optional EntityType injection for polymorphic tables

Key Features:

Macro Expansion:
Keys can use macros that are replaced with record attribute values:

	indexMap := map[string]string{
	    "PK":     "USER#{ID}",   // Becomes "USER#123"
	    "SK":     "PROFILE",     // Static value
	    "GSI1PK": "{Email}",     // Direct field value
	}

Paging:
Query and Scan results are exposed as pager.Fetcher values that follow
LastEvaluatedKey, so they can be consumed lazily:

	params, _ := users.QueryBuilder().
	    WithPartitionKey("USER#123").
	    WithSortKeyPrefix("ORDER#").
	    Build()
	for user, err := range pager.New(users.Query(params)).All(ctx) {
	    ...
	}

Catalog:
DynamoDB has no databases. Client treats a table named "<db>.<container>" as
container <container> of database <db>; unprefixed tables belong to
DefaultDatabase.

Errors reported by the service are translated into *errors.RemoteError with a
canonical code (ConditionalCheckFailedException becomes Conflict, throughput
exceptions become TooManyRequests).
*/
package ddb
