/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pager

import (
	"context"
)

// Page is one batch of records returned by a Fetcher.
type Page[T any] struct {
	// Items are the records of this page, in remote order.
	Items []T
	// Continuation is the opaque state the next fetch resumes from.
	Continuation any
	// Release frees resources held by the page. It may be nil.
	Release func()
}

func (p *Page[T]) release() {
	if p != nil && p.Release != nil {
		p.Release()
	}
}

// Fetcher supplies the pages of a remote result set, one FetchNext call at a time.
// Continuation state lives inside the fetcher.
type Fetcher[T any] interface {
	// HasMore reports whether another FetchNext call may return records.
	HasMore() bool
	// FetchNext fetches the next page. A page returned together with an error
	// is still released by the caller.
	FetchNext(ctx context.Context) (*Page[T], error)
}

// Closer is implemented by fetchers that hold resources across pages,
// such as an open server-side cursor.
type Closer interface {
	Close(ctx context.Context) error
}

// Func returns a Fetcher that calls fn until fn reports that no more pages follow.
func Func[T any](fn func(ctx context.Context) (page *Page[T], more bool, err error)) Fetcher[T] {
	return &funcFetcher[T]{fn: fn}
}

type funcFetcher[T any] struct {
	fn   func(ctx context.Context) (*Page[T], bool, error)
	done bool
}

func (f *funcFetcher[T]) HasMore() bool {
	return !f.done
}

func (f *funcFetcher[T]) FetchNext(ctx context.Context) (*Page[T], error) {
	page, more, err := f.fn(ctx)
	if err != nil {
		return page, err
	}
	if !more {
		f.done = true
	}
	return page, nil
}

// FromPages returns a Fetcher serving the given pages in order.
func FromPages[T any](pages ...[]T) Fetcher[T] {
	return &sliceFetcher[T]{pages: pages}
}

type sliceFetcher[T any] struct {
	pages [][]T
	next  int
}

func (f *sliceFetcher[T]) HasMore() bool {
	return f.next < len(f.pages)
}

func (f *sliceFetcher[T]) FetchNext(ctx context.Context) (*Page[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := &Page[T]{Items: f.pages[f.next], Continuation: f.next + 1}
	f.next++
	return page, nil
}

// Once returns a Fetcher with a single page produced by fn. It suits list
// calls that return everything at once.
func Once[T any](fn func(ctx context.Context) ([]T, error)) Fetcher[T] {
	return Func(func(ctx context.Context) (*Page[T], bool, error) {
		items, err := fn(ctx)
		if err != nil {
			return nil, false, err
		}
		return &Page[T]{Items: items}, false, nil
	})
}

// Map returns a Fetcher whose pages are the pages of f with fn applied to every record.
func Map[T, U any](f Fetcher[T], fn func(T) U) Fetcher[U] {
	return &mapFetcher[T, U]{src: f, fn: fn}
}

type mapFetcher[T, U any] struct {
	src Fetcher[T]
	fn  func(T) U
}

func (m *mapFetcher[T, U]) HasMore() bool {
	return m.src.HasMore()
}

func (m *mapFetcher[T, U]) FetchNext(ctx context.Context) (*Page[U], error) {
	page, err := m.src.FetchNext(ctx)
	if page == nil {
		return nil, err
	}
	out := &Page[U]{
		Items:        make([]U, len(page.Items)),
		Continuation: page.Continuation,
		Release:      page.Release,
	}
	for i, item := range page.Items {
		out.Items[i] = m.fn(item)
	}
	return out, err
}

func (m *mapFetcher[T, U]) Close(ctx context.Context) error {
	if c, ok := m.src.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
