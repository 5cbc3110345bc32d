/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongostore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suparena/docstore/pager"
)

// CursorFetcher pages through a server-side cursor that is opened on the
// first fetch. Each page holds at most pageSize documents.
type CursorFetcher[T any] struct {
	open     func(ctx context.Context) (*mongo.Cursor, error)
	cursor   *mongo.Cursor
	pageSize int
	done     bool
	logger   zerolog.Logger
}

var (
	_ pager.Fetcher[struct{}] = (*CursorFetcher[struct{}])(nil)
	_ pager.Closer            = (*CursorFetcher[struct{}])(nil)
)

// NewCursorFetcher returns a fetcher over the cursor open creates.
func NewCursorFetcher[T any](pageSize int, open func(ctx context.Context) (*mongo.Cursor, error)) *CursorFetcher[T] {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CursorFetcher[T]{
		open:     open,
		pageSize: pageSize,
		logger:   log.With().Str("component", "mongostore").Logger(),
	}
}

// WithLogger sets the logger that reports cursors the server failed to kill.
func (f *CursorFetcher[T]) WithLogger(logger zerolog.Logger) *CursorFetcher[T] {
	f.logger = logger
	return f
}

// HasMore reports whether the cursor may still hold documents.
func (f *CursorFetcher[T]) HasMore() bool {
	return !f.done
}

// FetchNext decodes up to pageSize documents from the cursor.
func (f *CursorFetcher[T]) FetchNext(ctx context.Context) (*pager.Page[T], error) {
	if f.done {
		return &pager.Page[T]{}, nil
	}
	if f.cursor == nil {
		cursor, err := f.open(ctx)
		if err != nil {
			f.done = true
			return nil, translateError(err)
		}
		f.cursor = cursor
	}

	page := &pager.Page[T]{Items: make([]T, 0, f.pageSize)}
	for len(page.Items) < f.pageSize {
		if !f.cursor.Next(ctx) {
			err := f.cursor.Err()
			f.finish(ctx)
			if err != nil {
				return nil, translateError(err)
			}
			return page, nil
		}
		var record T
		if err := f.cursor.Decode(&record); err != nil {
			f.finish(ctx)
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		page.Items = append(page.Items, record)
	}
	page.Continuation = f.cursor.ID()
	return page, nil
}

func (f *CursorFetcher[T]) finish(ctx context.Context) {
	f.done = true
	if err := f.Close(ctx); err != nil {
		f.logger.Warn().Err(err).Msg("Failed to close cursor")
	}
}

// Close kills the server-side cursor if it is still open.
func (f *CursorFetcher[T]) Close(ctx context.Context) error {
	if f.cursor == nil {
		return nil
	}
	cursor := f.cursor
	f.cursor = nil
	f.done = true
	return cursor.Close(context.WithoutCancel(ctx))
}
