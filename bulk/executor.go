/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/docstore/datastore"
	storeerrors "github.com/suparena/docstore/errors"
)

// Op is the write applied to every record of a batch.
type Op int

const (
	OpCreate Op = iota
	OpUpsert
	// OpUpdate has upsert semantics: a missing record is created.
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpsert:
		return "upsert"
	case OpUpdate:
		return "update"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ParseOp converts a name such as "create" back into an Op.
func ParseOp(name string) (Op, error) {
	switch strings.ToLower(name) {
	case "create":
		return OpCreate, nil
	case "upsert":
		return OpUpsert, nil
	case "update":
		return OpUpdate, nil
	}
	return 0, storeerrors.NewValidationError("op", fmt.Sprintf("unknown bulk operation %q", name))
}

// Result describes a finished batch. Successful writes leave no trace besides
// Dispatched; every failed write contributes exactly one entry to Failures.
type Result struct {
	Op         Op
	Dispatched int
	Failures   []string
	Duration   time.Duration
}

// OK reports whether every write in the batch succeeded.
func (r Result) OK() bool {
	return len(r.Failures) == 0
}

// Err folds the failures into a single error, or returns nil when the batch succeeded.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("bulk %s: %d of %d writes failed: %s",
		r.Op, len(r.Failures), r.Dispatched, strings.Join(r.Failures, " "))
}

// Executor applies one write operation to many records concurrently.
type Executor[T any] struct {
	collection datastore.Collection[T]
	logger     zerolog.Logger
}

// Option configures an Executor.
type Option func(*options)

type options struct {
	logger *zerolog.Logger
}

// WithLogger sets the logger used for failure and summary events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// NewExecutor creates an Executor writing to collection. It stays silent
// unless WithLogger is given.
func NewExecutor[T any](collection datastore.Collection[T], opts ...Option) *Executor[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := zerolog.Nop()
	if o.logger != nil {
		logger = *o.logger
	}
	return &Executor[T]{
		collection: collection,
		logger:     logger,
	}
}

// Create inserts every record. Records whose identity already exists fail individually.
func (e *Executor[T]) Create(ctx context.Context, records []T, pk *datastore.PartitionKey) Result {
	return e.Run(ctx, OpCreate, records, pk)
}

// Upsert inserts or replaces every record.
func (e *Executor[T]) Upsert(ctx context.Context, records []T, pk *datastore.PartitionKey) Result {
	return e.Run(ctx, OpUpsert, records, pk)
}

// Update writes every record with upsert semantics.
func (e *Executor[T]) Update(ctx context.Context, records []T, pk *datastore.PartitionKey) Result {
	return e.Run(ctx, OpUpdate, records, pk)
}

// Run starts one write per record at once and waits for all of them. A
// failing write never stops the others; it is classified and recorded in the
// Result in completion order. The same ctx and pk are passed to every write.
func (e *Executor[T]) Run(ctx context.Context, op Op, records []T, pk *datastore.PartitionKey) Result {
	start := time.Now()
	result := Result{Op: op, Dispatched: len(records), Failures: []string{}}
	if len(records) == 0 {
		return result
	}

	write := e.collection.Upsert
	if op == OpCreate {
		write = e.collection.Create
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i, record := range records {
		wg.Add(1)
		go func(i int, record T) {
			defer wg.Done()

			err := safeWrite(ctx, write, record, pk)
			if err == nil {
				return
			}

			fault := storeerrors.Classify(err)
			entry := fault.Describe()
			bulkFailures.WithLabelValues(op.String(), fault.Kind.String()).Inc()
			e.logger.Debug().
				Err(err).
				Str("op", op.String()).
				Int("index", i).
				Str("kind", fault.Kind.String()).
				Msg("Bulk write failed")

			mu.Lock()
			result.Failures = append(result.Failures, entry)
			mu.Unlock()
		}(i, record)
	}
	wg.Wait()

	result.Duration = time.Since(start)
	bulkWrites.WithLabelValues(op.String()).Add(float64(len(records)))
	bulkDuration.WithLabelValues(op.String()).Observe(result.Duration.Seconds())

	e.logger.Debug().
		Str("op", op.String()).
		Int("dispatched", result.Dispatched).
		Int("failed", len(result.Failures)).
		Dur("duration", result.Duration).
		Msg("Bulk batch finished")
	return result
}

// safeWrite turns a panicking write into an ordinary error so the barrier holds.
func safeWrite[T any](
	ctx context.Context,
	write func(context.Context, T, *datastore.PartitionKey) error,
	record T,
	pk *datastore.PartitionKey,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return write(ctx, record, pk)
}
