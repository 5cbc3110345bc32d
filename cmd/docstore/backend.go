/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/datastore/ddb"
	"github.com/suparena/docstore/datastore/memory"
	"github.com/suparena/docstore/datastore/mongostore"
	"github.com/suparena/docstore/datastore/redisstore"
	"github.com/suparena/docstore/internal/config"
	"github.com/suparena/docstore/pager"
)

// document is a schemaless record as read from the input file.
type document map[string]any

func documentID(d document) string {
	id, ok := d["id"]
	if !ok || id == nil {
		return ""
	}
	return fmt.Sprint(id)
}

// container is one opened collection with a way to list its records.
type container struct {
	coll    datastore.Collection[document]
	records func() pager.Fetcher[document]
	// prepare adapts a record to the backend before it is written.
	prepare func(document)
}

type openOptions struct {
	// keys is the DynamoDB index map, e.g. {"PK": "{id}"}.
	keys map[string]string
}

type backend struct {
	client datastore.Client
	open   func(ctx context.Context, database, name string, opts openOptions) (*container, error)
	close  func(ctx context.Context) error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendDynamoDB:
		return openDynamoDB(ctx, cfg.DynamoDB)
	case config.BackendMongoDB:
		return openMongoDB(ctx, cfg.MongoDB)
	case config.BackendRedis:
		return openRedis(ctx, cfg.Redis)
	default:
		return openMemory(), nil
	}
}

func openDynamoDB(ctx context.Context, cfg config.DynamoDBConfig) (*backend, error) {
	api, err := ddb.NewDynamoDBClient(ctx, ddb.Config{
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	client := ddb.NewClient(api,
		ddb.WithDelimiter(cfg.Delimiter),
		ddb.WithDefaultDatabase(cfg.DefaultDatabase),
	)
	return &backend{
		client: client,
		open: func(ctx context.Context, database, name string, opts openOptions) (*container, error) {
			coll := ddb.OpenCollection[document](client, database, name, ddb.WithIndexMap(opts.keys))
			return &container{
				coll:    coll,
				records: func() pager.Fetcher[document] { return coll.Scan(nil) },
			}, nil
		},
		close: func(context.Context) error { return nil },
	}, nil
}

func openMongoDB(ctx context.Context, cfg config.MongoDBConfig) (*backend, error) {
	mc, err := mongostore.Connect(ctx, cfg.URI)
	if err != nil {
		return nil, err
	}
	client := mongostore.NewClient(mc, cfg.PageSize)
	return &backend{
		client: client,
		open: func(ctx context.Context, database, name string, _ openOptions) (*container, error) {
			coll := mongostore.OpenCollection[document](client, database, name)
			return &container{
				coll:    coll,
				records: func() pager.Fetcher[document] { return coll.Find(nil, cfg.PageSize) },
				prepare: func(d document) { d["_id"] = d["id"] },
			}, nil
		},
		close: mc.Disconnect,
	}, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (*backend, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	client := redisstore.NewClient(rdb, cfg.PageSize)
	return &backend{
		client: client,
		open: func(ctx context.Context, database, name string, _ openOptions) (*container, error) {
			coll, err := redisstore.OpenCollection[document](ctx, client, database, name, documentID)
			if err != nil {
				return nil, err
			}
			return &container{
				coll:    coll,
				records: func() pager.Fetcher[document] { return coll.Scan(cfg.PageSize) },
			}, nil
		},
		close: func(context.Context) error { return rdb.Close() },
	}, nil
}

// openMemory keeps everything in process; it serves dry runs and tests.
func openMemory() *backend {
	client := memory.NewClient()
	var mu sync.Mutex
	opened := make(map[string]*memory.Collection[document])
	return &backend{
		client: client,
		open: func(_ context.Context, database, name string, _ openOptions) (*container, error) {
			mu.Lock()
			defer mu.Unlock()
			key := database + "/" + name
			coll, ok := opened[key]
			if !ok {
				client.CreateDatabase(database).CreateContainer(database, name)
				coll = memory.New[document]().WithGetKeyFunc(documentID)
				opened[key] = coll
			}
			return &container{
				coll:    coll,
				records: func() pager.Fetcher[document] { return coll.Query(100) },
			}, nil
		},
		close: func(context.Context) error { return nil },
	}
}
