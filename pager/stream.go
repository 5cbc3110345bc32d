/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pager

import (
	"context"
	"time"

	"github.com/suparena/docstore/storagemodels"
)

// Stream runs a Sequence over f in the background and delivers its records on
// a buffered channel. The channel is closed when the sequence ends; a terminal
// error, including cancellation, arrives as a final result with Error set.
// The consumer must drain the channel until it is closed.
func Stream[T any](ctx context.Context, f Fetcher[T], opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go streamWorker(ctx, New(f), options, resultCh)
	return resultCh
}

func streamWorker[T any](
	ctx context.Context,
	seq *Sequence[T],
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)
	defer seq.Close(ctx)

	startTime := time.Now()
	reportedPages := 0

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: seq.Delivered(),
			PagesProcessed: seq.Pages(),
			Continuation:   seq.Continuation(),
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	for seq.Next(ctx) {
		if seq.Pages() != reportedPages && reportedPages > 0 {
			reportProgress()
		}
		reportedPages = seq.Pages()

		result := storagemodels.StreamResult[T]{
			Item: seq.Item(),
			Meta: storagemodels.StreamMeta{
				Index:      seq.Delivered() - 1,
				PageNumber: seq.Pages(),
				Timestamp:  time.Now(),
			},
		}
		select {
		case resultCh <- result:
		case <-ctx.Done():
			// Next will observe the cancellation and report it below.
		}
	}

	if err := seq.Err(); err != nil {
		// sent unconditionally; consumers drain until close
		resultCh <- storagemodels.StreamResult[T]{
			Error: err,
			Meta: storagemodels.StreamMeta{
				Index:      seq.Delivered(),
				PageNumber: seq.Pages(),
				Timestamp:  time.Now(),
			},
		}
	}

	reportProgress()
}
