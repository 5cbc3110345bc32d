/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pager

import (
	"context"
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	storeerrors "github.com/suparena/docstore/errors"
)

// Sequence presents the pages of a Fetcher as one lazy sequence of records.
//
// A page is fetched only when the records of the previous page are exhausted
// and Next is called again. The context passed to Next is checked before every
// fetch and before every record; once it is done the sequence stops and Err
// reports ErrCancelled wrapped together with the context error. A fetch error
// ends the sequence for good.
//
// A Sequence is not safe for concurrent use.
type Sequence[T any] struct {
	fetcher Fetcher[T]
	logger  zerolog.Logger

	buf  []T
	pos  int
	item T
	err  error
	done bool

	pages        int
	delivered    int64
	continuation any
}

// Option configures a Sequence.
type Option func(*options)

type options struct {
	logger *zerolog.Logger
}

// WithLogger sets the logger used for page-level debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// New wraps f into a Sequence. Nothing is fetched until the first Next call.
// Page events are discarded unless WithLogger is given.
func New[T any](f Fetcher[T], opts ...Option) *Sequence[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := zerolog.Nop()
	if o.logger != nil {
		logger = *o.logger
	}
	return &Sequence[T]{
		fetcher: f,
		logger:  logger,
	}
}

// Next advances to the next record, fetching a page when the current one is
// exhausted. It returns false when the sequence is finished, failed or cancelled.
func (s *Sequence[T]) Next(ctx context.Context) bool {
	if s.err != nil || s.done {
		return false
	}

	for s.pos >= len(s.buf) {
		if !s.fetcher.HasMore() {
			s.done = true
			s.buf = nil
			return false
		}
		if err := ctx.Err(); err != nil {
			s.cancel(err)
			return false
		}
		if err := s.fetch(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				s.cancel(ctxErr)
			} else {
				s.fail(err)
			}
			return false
		}
	}

	if err := ctx.Err(); err != nil {
		s.cancel(err)
		return false
	}

	var zero T
	s.item = s.buf[s.pos]
	s.buf[s.pos] = zero
	s.pos++
	s.delivered++
	return true
}

// fetch reads one page into the buffer. The page is released as soon as its
// records are copied out, whatever the outcome.
func (s *Sequence[T]) fetch(ctx context.Context) error {
	page, err := s.fetcher.FetchNext(ctx)
	defer page.release()
	if err != nil {
		pageFetchErrors.Inc()
		return err
	}

	s.pages++
	pagesFetched.Inc()
	s.buf = s.buf[:0]
	s.pos = 0
	if page == nil {
		return nil
	}
	s.buf = append(s.buf, page.Items...)
	s.continuation = page.Continuation

	s.logger.Debug().
		Int("page", s.pages).
		Int("items", len(page.Items)).
		Bool("has_more", s.fetcher.HasMore()).
		Msg("Fetched page")
	return nil
}

func (s *Sequence[T]) fail(err error) {
	s.err = fmt.Errorf("fetch page %d: %w", s.pages+1, err)
	s.buf = nil
	s.logger.Warn().Err(err).Int("page", s.pages+1).Msg("Page fetch failed")
}

func (s *Sequence[T]) cancel(cause error) {
	s.err = fmt.Errorf("%w: %w", storeerrors.ErrCancelled, cause)
	s.buf = nil
	sequenceCancellations.Inc()
	s.logger.Debug().
		Int64("delivered", s.delivered).
		Int("pages", s.pages).
		Msg("Sequence cancelled")
}

// Item returns the record Next advanced to.
func (s *Sequence[T]) Item() T {
	return s.item
}

// Err returns the terminal error of the sequence, or nil if it ended normally
// or is still running.
func (s *Sequence[T]) Err() error {
	return s.err
}

// Pages returns the number of pages fetched so far.
func (s *Sequence[T]) Pages() int {
	return s.pages
}

// Delivered returns the number of records yielded so far.
func (s *Sequence[T]) Delivered() int64 {
	return s.delivered
}

// Continuation returns the continuation state of the last fetched page.
func (s *Sequence[T]) Continuation() any {
	return s.continuation
}

// Close releases fetcher resources held across pages. It is safe to call on
// a finished sequence.
func (s *Sequence[T]) Close(ctx context.Context) error {
	s.buf = nil
	if c, ok := s.fetcher.(Closer); ok {
		return c.Close(context.WithoutCancel(ctx))
	}
	return nil
}

// All returns the sequence as a range-over-func iterator. A terminal error,
// including cancellation, is yielded once as the last pair.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close(ctx)
		for s.Next(ctx) {
			if !yield(s.item, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains f into a slice. On error no partial result is returned.
func Collect[T any](ctx context.Context, f Fetcher[T], opts ...Option) ([]T, error) {
	seq := New(f, opts...)
	defer seq.Close(ctx)

	var items []T
	for seq.Next(ctx) {
		items = append(items, seq.Item())
	}
	if err := seq.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
