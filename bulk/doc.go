/*
Package bulk applies one write operation to a whole collection of records concurrently.

Every record gets its own write, and all writes are started at once. The
executor waits for all of them before it returns, so a Result is only ever
observed after the batch is complete:

	exec := bulk.NewExecutor[User](collection)
	result := exec.Create(ctx, users, nil)
	for _, failure := range result.Failures {
	    fmt.Println(failure)
	}

One failing write never aborts the others. Each failure is classified and
recorded as one entry:

	Received Conflict (record with key "u1" already exists).
	Exception dial tcp 10.0.0.1:443: i/o timeout.

Store rejections (an *errors.RemoteError anywhere in the chain) take the first
form; everything else, including a cancelled context or a panicking write,
takes the second. Update is an alias of Upsert: a missing record is created.

Failed writes are not retried, and the batch is neither throttled nor split.
*/
package bulk
