/*
Package datastore defines the capabilities docstore needs from a remote document store.

Collection[T] is the write side used by the bulk executor:

	type Collection[T any] interface {
	    Create(ctx context.Context, record T, pk *PartitionKey) error
	    Upsert(ctx context.Context, record T, pk *PartitionKey) error
	}

Client is the catalog side used by the existence probes. Both listings are
returned as pager.Fetcher values so they can be consumed lazily:

	type Client interface {
	    DatabaseIDs() pager.Fetcher[string]
	    ContainerIDs(database string) pager.Fetcher[string]
	}

Implementations:
  - ddb: DynamoDB, databases are table-name prefixes
  - mongostore: MongoDB databases and collections
  - redisstore: Redis logical databases with a container catalog set
  - memory: in-memory store with latency and failure injection for tests
  - testmodels: typed records shared by backend tests

Backends translate their SDK failures into *errors.RemoteError so callers can
tell a store rejection from a transport fault.
*/
package datastore
