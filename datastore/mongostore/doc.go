/*
Package mongostore provides the MongoDB backend of docstore.

A container is a MongoDB collection and a database is a MongoDB database:

	client, _ := mongostore.Connect(ctx, "mongodb://localhost:27017")
	users := mongostore.NewCollection[User](client.Database("app").Collection("users"))
	result := bulk.NewExecutor[User](users).Upsert(ctx, records, nil)

Create is an InsertOne and reports a duplicate _id as a Conflict. Upsert is a
ReplaceOne with upsert enabled, filtered by _id and, when a partition key is
given, by the partition field as well.

Listings run over server-side cursors. CursorFetcher turns a cursor into pages
of a fixed size and closes it once exhausted or when the sequence is closed.
*/
package mongostore
