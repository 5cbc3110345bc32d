/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/bulk"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/pager"
)

var errFailedWrites = errors.New("some writes failed")

func (c *commands) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *commands) exists(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: exists <database> [container]", errUsage)
	}

	var (
		ok  bool
		err error
	)
	if len(args) == 1 {
		ok, err = docstore.DatabaseExists(ctx, c.backend.client, args[0])
	} else {
		ok, err = docstore.ContainerExists(ctx, c.backend.client, args[0], args[1])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, ok)
	return nil
}

func (c *commands) list(ctx context.Context, args []string) error {
	fs := c.flagSet("list")
	database := fs.String("db", "", "database whose containers to list")
	name := fs.String("container", "", "container whose records to list")
	limit := fs.Int64("limit", 0, "stop after this many entries (0 = all)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch {
	case *database == "":
		return printAll(ctx, c, c.backend.client.DatabaseIDs(), *limit)
	case *name == "":
		return printAll(ctx, c, c.backend.client.ContainerIDs(*database), *limit)
	default:
		cont, err := c.backend.open(ctx, *database, *name, openOptions{keys: defaultKeys()})
		if err != nil {
			return err
		}
		return printAll(ctx, c, cont.records(), *limit)
	}
}

// printAll writes one JSON value per line until the sequence ends or limit is reached.
func printAll[T any](ctx context.Context, c *commands, f pager.Fetcher[T], limit int64) error {
	seq := docstore.AsSequence(f, pager.WithLogger(c.logger))
	defer seq.Close(ctx)

	enc := json.NewEncoder(c.stdout)
	for seq.Next(ctx) {
		if err := enc.Encode(seq.Item()); err != nil {
			return err
		}
		if limit > 0 && seq.Delivered() >= limit {
			return nil
		}
	}
	return seq.Err()
}

func (c *commands) bulk(ctx context.Context, args []string) error {
	fs := c.flagSet("bulk")
	opName := fs.String("op", "upsert", "create, upsert or update")
	database := fs.String("db", "", "target database")
	name := fs.String("container", "", "target container")
	file := fs.String("file", "-", "JSON array of records, - for stdin")
	pkValue := fs.String("pk", "", "partition key applied to every record")
	keys := fs.String("keys", "PK={id}", "DynamoDB key templates, e.g. PK=USER#{id},SK=PROFILE")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *database == "" || *name == "" {
		return fmt.Errorf("%w: bulk needs -db and -container", errUsage)
	}

	op, err := bulk.ParseOp(*opName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	keyMap, err := parseKeys(*keys)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	records, err := readRecords(*file)
	if err != nil {
		return err
	}

	cont, err := c.backend.open(ctx, *database, *name, openOptions{keys: keyMap})
	if err != nil {
		return err
	}
	for _, r := range records {
		if documentID(r) == "" {
			r["id"] = uuid.NewString()
		}
		if cont.prepare != nil {
			cont.prepare(r)
		}
	}

	var pk *datastore.PartitionKey
	if *pkValue != "" {
		pk = datastore.NewPartitionKey(*pkValue)
	}

	logger := c.logger.With().Str("database", *database).Str("container", *name).Logger()
	result := bulk.NewExecutor(cont.coll, bulk.WithLogger(logger)).Run(ctx, op, records, pk)

	fmt.Fprintf(c.stdout, "%s: %d dispatched, %d failed in %s\n",
		op, result.Dispatched, len(result.Failures), result.Duration.Round(time.Millisecond))
	for _, failure := range result.Failures {
		fmt.Fprintln(c.stdout, failure)
	}
	if !result.OK() {
		return errFailedWrites
	}
	return nil
}

func readRecords(path string) ([]document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var records []document
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func defaultKeys() map[string]string {
	return map[string]string{"PK": "{id}"}
}

// parseKeys reads "PK=USER#{id},SK=PROFILE" into an index map.
func parseKeys(spec string) (map[string]string, error) {
	keys := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		attr, template, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || attr == "" || template == "" {
			return nil, fmt.Errorf("invalid key template %q", pair)
		}
		keys[attr] = template
	}
	if _, ok := keys["PK"]; !ok {
		return nil, fmt.Errorf("key templates %q define no PK", spec)
	}
	return keys, nil
}
