/*
Package pager turns paginated remote result sets into lazy, cancellable sequences.

A backend supplies a Fetcher, which knows how to fetch the next page and whether
more pages remain:

	type Fetcher[T any] interface {
	    HasMore() bool
	    FetchNext(ctx context.Context) (*Page[T], error)
	}

Sequence hides the page boundaries:

	seq := pager.New(fetcher)
	defer seq.Close(ctx)
	for seq.Next(ctx) {
	    process(seq.Item())
	}
	if err := seq.Err(); err != nil {
	    if errors.IsCancelled(err) {
	        // ctx was cancelled mid-sequence
	    }
	    return err
	}

Records are delivered in page order, and in order within a page. The next page
is fetched only once the current one is exhausted. The context is checked before
each fetch and before each record. Fetch errors are not retried; they end the
sequence.

Helpers:
  - All: a range-over-func view, for item, err := range seq.All(ctx)
  - Collect: drain a fetcher into a slice
  - Stream: deliver records on a channel with progress callbacks
  - FromPages, Once, Func, Map: build and adapt fetchers
*/
package pager
