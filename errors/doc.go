/*
Package errors provides semantic errors for the docstore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("not found")
	    ErrAlreadyExists   = errors.New("already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrNoIndexMap      = errors.New("no index map found for type")
	    ErrThrottled       = errors.New("request throttled")
	    ErrCancelled       = errors.New("sequence cancelled")
	)

Key errors:

KeyError names the container and key a write collided with or a lookup
missed. It unwraps to ErrAlreadyExists or ErrNotFound, and backends place it
inside the RemoteError they return:

	var keyErr *errors.KeyError
	if errors.As(err, &keyErr) {
	    log.Printf("duplicate %s", keyErr.Key)
	}

Remote failures:

Backends translate the faults of their SDKs into *RemoteError, which carries a
canonical status code (Conflict, NotFound, TooManyRequests, ...), the HTTP
equivalent status and the store's message. Canonical codes match the sentinels:

	err := coll.Create(ctx, doc, nil)
	if errors.IsAlreadyExists(err) {
	    // Conflict
	}

Classification:

Classify turns any error into a Fault of one of two kinds, KindRemote or
KindUnclassified, and Fault.Describe renders it:

	errors.Classify(err).Describe() // "Received Conflict (item exists)."
	                                // "Exception dial tcp: i/o timeout."
*/
package errors
