/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/pager"
)

const (
	// DefaultDelimiter separates the database prefix from the container in a table name.
	DefaultDelimiter = "."
	// DefaultDatabase owns every table whose name carries no delimiter.
	DefaultDatabase = "default"
)

// Client maps the database/container catalog onto DynamoDB table names.
// DynamoDB has no databases, so "<database>.<container>" names the table of a
// container and tables without a prefix belong to DefaultDatabase.
type Client struct {
	api       API
	delimiter string
	defaultDB string
	pageSize  int32
}

var _ datastore.Client = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDelimiter sets the database/container separator
func WithDelimiter(delimiter string) ClientOption {
	return func(c *Client) {
		c.delimiter = delimiter
	}
}

// WithDefaultDatabase names the database of unprefixed tables
func WithDefaultDatabase(name string) ClientOption {
	return func(c *Client) {
		c.defaultDB = name
	}
}

// WithListPageSize limits how many table names one ListTables call returns
func WithListPageSize(n int32) ClientOption {
	return func(c *Client) {
		c.pageSize = n
	}
}

// NewClient creates a catalog client over api.
func NewClient(api API, opts ...ClientOption) *Client {
	c := &Client{
		api:       api,
		delimiter: DefaultDelimiter,
		defaultDB: DefaultDatabase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TableName returns the table backing container in database.
func (c *Client) TableName(database, container string) string {
	if database == "" || database == c.defaultDB {
		return container
	}
	return database + c.delimiter + container
}

func (c *Client) split(table string) (database, container string) {
	database, container, ok := strings.Cut(table, c.delimiter)
	if !ok {
		return c.defaultDB, table
	}
	return database, container
}

// DatabaseIDs lists every database that owns at least one table.
func (c *Client) DatabaseIDs() pager.Fetcher[string] {
	seen := make(map[string]struct{})
	return c.listTables(func(table string) (string, bool) {
		database, _ := c.split(table)
		if _, dup := seen[database]; dup {
			return "", false
		}
		seen[database] = struct{}{}
		return database, true
	})
}

// ContainerIDs lists the containers of database.
func (c *Client) ContainerIDs(database string) pager.Fetcher[string] {
	return c.listTables(func(table string) (string, bool) {
		db, container := c.split(table)
		return container, db == database
	})
}

// listTables pages through ListTables and keeps the names keep accepts.
func (c *Client) listTables(keep func(table string) (string, bool)) pager.Fetcher[string] {
	var startName *string
	return pager.Func(func(ctx context.Context) (*pager.Page[string], bool, error) {
		input := &sdk.ListTablesInput{ExclusiveStartTableName: startName}
		if c.pageSize > 0 {
			input.Limit = aws.Int32(c.pageSize)
		}
		out, err := c.api.ListTables(ctx, input)
		if err != nil {
			return nil, false, fmt.Errorf("ListTables failed: %w", translateError(err))
		}

		page := &pager.Page[string]{}
		for _, table := range out.TableNames {
			if id, ok := keep(table); ok {
				page.Items = append(page.Items, id)
			}
		}
		startName = out.LastEvaluatedTableName
		if startName != nil {
			page.Continuation = *startName
		}
		return page, startName != nil, nil
	})
}

// OpenCollection binds T to the table of container in database.
func OpenCollection[T any](c *Client, database, container string, opts ...CollectionOption) *Collection[T] {
	return NewCollection[T](c.api, c.TableName(database, container), opts...)
}
