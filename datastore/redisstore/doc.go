/*
Package redisstore provides the Redis backend of docstore.

Records are stored as JSON strings. A container is a key prefix:

	<container>:<id>          default routing
	<container>:{<pk>}:<id>   with a partition key

The braces form a Redis Cluster hash tag, so all records of one partition land
on the same slot. Create uses SETNX and reports an existing key as a Conflict;
Upsert uses SET.

Redis has no catalog of key prefixes, so Client keeps one: the containers of a
database are members of the set "docstore:containers:<database>", added with
RegisterContainer. Databases are the logical database indexes reported by
CONFIG GET databases.
*/
package redisstore
