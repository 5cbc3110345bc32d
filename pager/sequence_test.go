/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pager_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/pager"
)

// trackingFetcher serves fixed pages and records every fetch and release.
type trackingFetcher struct {
	pages    [][]string
	next     int
	failAt   int // 1-based page number that fails; 0 = never
	failErr  error
	fetches  int
	releases int
	closed   bool
}

func (f *trackingFetcher) HasMore() bool {
	return f.next < len(f.pages)
}

func (f *trackingFetcher) FetchNext(ctx context.Context) (*pager.Page[string], error) {
	f.fetches++
	page := &pager.Page[string]{Release: func() { f.releases++ }}
	if f.failAt == f.next+1 {
		return page, f.failErr
	}
	page.Items = f.pages[f.next]
	f.next++
	return page, nil
}

func (f *trackingFetcher) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

func drain(ctx context.Context, seq *pager.Sequence[string]) []string {
	var out []string
	for seq.Next(ctx) {
		out = append(out, seq.Item())
	}
	return out
}

func TestSequenceYieldsAllPagesInOrder(t *testing.T) {
	ctx := context.Background()
	fetcher := &trackingFetcher{pages: [][]string{{"a", "b"}, {"c"}, {}}}

	seq := pager.New[string](fetcher)
	got := drain(ctx, seq)

	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fetcher.fetches != 3 {
		t.Errorf("Expected 3 fetches, got %d", fetcher.fetches)
	}
	if fetcher.releases != 3 {
		t.Errorf("Expected every page released, got %d releases", fetcher.releases)
	}
	if seq.Pages() != 3 || seq.Delivered() != 3 {
		t.Errorf("Unexpected counters: pages=%d delivered=%d", seq.Pages(), seq.Delivered())
	}

	// A finished sequence stays finished.
	if seq.Next(ctx) {
		t.Error("Next should keep returning false after the end")
	}
}

func TestSequenceIsLazy(t *testing.T) {
	ctx := context.Background()
	fetcher := &trackingFetcher{pages: [][]string{{"a", "b"}, {"c"}}}

	seq := pager.New[string](fetcher)
	if fetcher.fetches != 0 {
		t.Fatalf("New should not fetch, got %d fetches", fetcher.fetches)
	}

	seq.Next(ctx)
	seq.Next(ctx)
	if fetcher.fetches != 1 {
		t.Fatalf("Expected 1 fetch while the first page lasts, got %d", fetcher.fetches)
	}

	seq.Next(ctx)
	if fetcher.fetches != 2 {
		t.Fatalf("Expected second fetch on demand, got %d", fetcher.fetches)
	}
}

func TestSequenceEmptyFetcher(t *testing.T) {
	fetcher := &trackingFetcher{}
	seq := pager.New[string](fetcher)
	if seq.Next(context.Background()) {
		t.Fatal("Empty fetcher should yield nothing")
	}
	if seq.Err() != nil || fetcher.fetches != 0 {
		t.Errorf("Expected clean end without fetching, err=%v fetches=%d", seq.Err(), fetcher.fetches)
	}
}

func TestSequenceCancellation(t *testing.T) {
	t.Run("MidPage", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		fetcher := &trackingFetcher{pages: [][]string{{"a", "b"}, {"c"}}}
		seq := pager.New[string](fetcher)

		if !seq.Next(ctx) || seq.Item() != "a" {
			t.Fatal("Expected first record")
		}
		cancel()

		if seq.Next(ctx) {
			t.Fatalf("Expected no more records after cancel, got %q", seq.Item())
		}
		err := seq.Err()
		if !storeerrors.IsCancelled(err) {
			t.Fatalf("Expected cancellation error, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Cancellation should carry context.Canceled, got %v", err)
		}
		if fetcher.fetches != 1 {
			t.Errorf("No further fetch expected, got %d", fetcher.fetches)
		}
	})

	t.Run("BeforeFetch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fetcher := &trackingFetcher{pages: [][]string{{"a"}}}
		seq := pager.New[string](fetcher)

		if seq.Next(ctx) {
			t.Fatal("Cancelled context should not yield")
		}
		if !storeerrors.IsCancelled(seq.Err()) {
			t.Errorf("Expected cancellation, got %v", seq.Err())
		}
		if fetcher.fetches != 0 {
			t.Errorf("Fetch should not start after cancel, got %d", fetcher.fetches)
		}
	})

	t.Run("DuringFetch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		fetcher := pager.Func(func(ctx context.Context) (*pager.Page[string], bool, error) {
			cancel()
			return nil, false, ctx.Err()
		})
		seq := pager.New(fetcher)
		if seq.Next(ctx) {
			t.Fatal("Expected no records")
		}
		if !storeerrors.IsCancelled(seq.Err()) {
			t.Errorf("Fetch aborted by cancel should report cancellation, got %v", seq.Err())
		}
	})
}

func TestSequenceFetchFailureIsTerminal(t *testing.T) {
	ctx := context.Background()
	boom := storeerrors.NewRemoteError(storeerrors.CodeServiceUnavailable, 503, "try later", nil)
	fetcher := &trackingFetcher{
		pages:   [][]string{{"a"}, {"b"}, {"c"}},
		failAt:  2,
		failErr: boom,
	}
	seq := pager.New[string](fetcher)

	got := drain(ctx, seq)
	if want := []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected %v before the failure, got %v", want, got)
	}
	if !errors.Is(seq.Err(), boom) {
		t.Fatalf("Expected fetch error to propagate, got %v", seq.Err())
	}
	if storeerrors.IsCancelled(seq.Err()) {
		t.Error("Fetch failure must not look like a cancellation")
	}
	if fetcher.releases != 2 {
		t.Errorf("Failed page should be released too, got %d releases", fetcher.releases)
	}

	// The sequence cannot be resumed.
	fetcher.failAt = 0
	if seq.Next(ctx) {
		t.Error("Sequence resumed after a fetch failure")
	}
	if fetcher.fetches != 2 {
		t.Errorf("No fetch expected after failure, got %d", fetcher.fetches)
	}
}

func TestSequenceAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Complete", func(t *testing.T) {
		fetcher := &trackingFetcher{pages: [][]string{{"a", "b"}, {"c"}, {}}}
		var got []string
		for item, err := range pager.New[string](fetcher).All(ctx) {
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			got = append(got, item)
		}
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("Expected %v, got %v", want, got)
		}
		if !fetcher.closed {
			t.Error("All should close the fetcher")
		}
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		fetcher := &trackingFetcher{pages: [][]string{{"a", "b"}, {"c"}}}
		for item := range pager.New[string](fetcher).All(ctx) {
			if item == "a" {
				break
			}
		}
		if fetcher.fetches != 1 {
			t.Errorf("Breaking early should not fetch further, got %d", fetcher.fetches)
		}
		if !fetcher.closed {
			t.Error("Breaking early should close the fetcher")
		}
	})

	t.Run("Error", func(t *testing.T) {
		boom := errors.New("boom")
		fetcher := &trackingFetcher{pages: [][]string{{"a"}, {"b"}}, failAt: 2, failErr: boom}
		var sawErr error
		count := 0
		for _, err := range pager.New[string](fetcher).All(ctx) {
			if err != nil {
				sawErr = err
				continue
			}
			count++
		}
		if count != 1 || !errors.Is(sawErr, boom) {
			t.Errorf("Expected 1 record then error, got %d records and %v", count, sawErr)
		}
	})
}

func TestCollect(t *testing.T) {
	ctx := context.Background()

	items, err := pager.Collect(ctx, pager.FromPages([]string{"db1", "db2"}, []string{}))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if want := []string{"db1", "db2"}; !reflect.DeepEqual(items, want) {
		t.Fatalf("Expected %v, got %v", want, items)
	}

	boom := errors.New("list failed")
	items, err = pager.Collect(ctx, pager.Once(func(ctx context.Context) ([]string, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) || items != nil {
		t.Fatalf("Expected error and no items, got %v / %v", items, err)
	}
}

func TestMap(t *testing.T) {
	type named struct{ Name string }
	src := pager.FromPages([]named{{"a"}, {"b"}}, []named{{"c"}})
	names, err := pager.Collect(context.Background(), pager.Map(src, func(n named) string { return n.Name }))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
}

func TestFuncFetcher(t *testing.T) {
	calls := 0
	fetcher := pager.Func(func(ctx context.Context) (*pager.Page[int], bool, error) {
		calls++
		return &pager.Page[int]{Items: []int{calls}}, calls < 3, nil
	})
	items, err := pager.Collect(context.Background(), fetcher)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(items, want) {
		t.Fatalf("Expected %v, got %v", want, items)
	}
}

func TestSequenceLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var global bytes.Buffer
	log.Logger = zerolog.New(&global)
	ctx := context.Background()

	t.Run("SilentByDefault", func(t *testing.T) {
		seq := pager.New[string](&trackingFetcher{pages: [][]string{{"a"}, {"b"}}})
		if got := drain(ctx, seq); len(got) != 2 {
			t.Fatalf("Expected 2 items, got %v", got)
		}
		if global.Len() != 0 {
			t.Errorf("Expected no output without WithLogger, got %s", global.String())
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		seq := pager.New[string](&trackingFetcher{pages: [][]string{{"a"}, {"b"}}},
			pager.WithLogger(zerolog.New(&buf)))
		drain(ctx, seq)

		if n := strings.Count(buf.String(), "Fetched page"); n != 2 {
			t.Errorf("Expected 2 page lines, got %d: %s", n, buf.String())
		}
		if global.Len() != 0 {
			t.Errorf("Expected nothing on the global logger, got %s", global.String())
		}
	})
}
