/*
Package docstore is a typed client layer over document stores.

It provides three primitives that work the same against every backend:

  - Bulk writes: BulkCreate, BulkUpsert and BulkUpdate issue one write per
    record, all at once, wait for every write to settle and report the failed
    ones as human-readable entries. A failed record never aborts the others.
  - Paged sequences: AsSequence turns a page fetcher (a query, a scan, a
    catalog listing) into one lazy, cancellable sequence of records.
  - Existence probes: DatabaseExists and ContainerExists check the catalog by
    listing it.

Backends live under datastore/: ddb (DynamoDB), mongostore (MongoDB),
redisstore (Redis) and memory (in-process, for tests).

Basic Usage:

	users := ddb.NewCollection[User](api, "app.users")
	result := docstore.BulkCreate(ctx, users, records, nil)
	if !result.OK() {
		for _, failure := range result.Failures {
			log.Warn().Msg(failure)
		}
	}

	seq := docstore.AsSequence(users.Query(params))
	defer seq.Close(ctx)
	for seq.Next(ctx) {
		process(seq.Item())
	}
	if err := seq.Err(); err != nil {
		return err
	}

	ok, err := docstore.ContainerExists(ctx, client, "app", "users")

Collections and clients can be kept in the registries of this package:
MultiTypeCollections holds named collections per record type and Clients holds
named catalog clients.
*/
package docstore
