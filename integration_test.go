//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/datastore/ddb"
	"github.com/suparena/docstore/datastore/testmodels"
	storeerrors "github.com/suparena/docstore/errors"
)

// setupDynamoDB connects to the endpoint in AWS_ENDPOINT (e.g. DynamoDB Local)
// and creates a throwaway "it.<suffix>" table with a PK/SK key schema.
func setupDynamoDB(t *testing.T) (*sdk.Client, *ddb.Client, string) {
	t.Helper()
	_ = godotenv.Load()

	endpoint := os.Getenv("AWS_ENDPOINT")
	if endpoint == "" {
		t.Skip("AWS_ENDPOINT not set, skipping DynamoDB integration test")
	}

	ctx := context.Background()
	api, err := ddb.NewDynamoDBClient(ctx, ddb.Config{
		AccessKey: "local",
		SecretKey: "local",
		Region:    "us-east-1",
		Endpoint:  endpoint,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	database := "it" + uuid.NewString()[:8]
	table := database + ddb.DefaultDelimiter + "players"
	_, err = api.CreateTable(ctx, &sdk.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	t.Cleanup(func() {
		api.DeleteTable(context.Background(), &sdk.DeleteTableInput{TableName: aws.String(table)})
	})

	waiter := sdk.NewTableExistsWaiter(api)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: aws.String(table)}, time.Minute); err != nil {
		t.Fatalf("Table never became active: %v", err)
	}

	return api, ddb.NewClient(api, ddb.WithListPageSize(2)), database
}

func TestDynamoDBIntegration(t *testing.T) {
	_, client, database := setupDynamoDB(t)
	ctx := context.Background()

	players := ddb.OpenCollection[testmodels.Player](client, database, "players")

	records := make([]testmodels.Player, 25)
	for i := range records {
		records[i] = testmodels.Player{
			ID:     fmt.Sprintf("p%02d", i),
			Email:  "player@example.com",
			Rating: 1000 + i,
		}
	}

	t.Run("BulkCreate", func(t *testing.T) {
		result := docstore.BulkCreate[testmodels.Player](ctx, players, records, nil)
		if !result.OK() {
			t.Fatalf("Bulk create failed: %v", result.Err())
		}

		again := docstore.BulkCreate[testmodels.Player](ctx, players, records[:3], nil)
		if len(again.Failures) != 3 {
			t.Fatalf("Expected 3 conflicts, got %v", again.Failures)
		}
		for _, f := range again.Failures {
			if f != "Received Conflict (The conditional request failed)." {
				t.Errorf("Unexpected failure entry %q", f)
			}
		}
	})

	t.Run("BulkUpsert", func(t *testing.T) {
		result := docstore.BulkUpsert[testmodels.Player](ctx, players, records, nil)
		if !result.OK() {
			t.Fatalf("Bulk upsert failed: %v", result.Err())
		}
	})

	t.Run("ScanSequence", func(t *testing.T) {
		seq := docstore.AsSequence(players.Scan(nil))
		defer seq.Close(ctx)

		count := 0
		for seq.Next(ctx) {
			if err := seq.Item().Validate(); err != nil {
				t.Errorf("Invalid record %+v: %v", seq.Item(), err)
			}
			count++
		}
		if err := seq.Err(); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if count != len(records) {
			t.Errorf("Expected %d records, got %d", len(records), count)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		seq := docstore.AsSequence(players.Scan(nil))
		defer seq.Close(ctx)

		seq.Next(cctx)
		cancel()
		if seq.Next(cctx) {
			t.Fatal("Expected the sequence to stop after cancel")
		}
		if !storeerrors.IsCancelled(seq.Err()) {
			t.Errorf("Expected cancellation, got %v", seq.Err())
		}
	})

	t.Run("Probes", func(t *testing.T) {
		if ok, err := docstore.DatabaseExists(ctx, client, database); err != nil || !ok {
			t.Errorf("Expected database %s, got %v / %v", database, ok, err)
		}
		if ok, err := docstore.ContainerExists(ctx, client, database, "players"); err != nil || !ok {
			t.Errorf("Expected players container, got %v / %v", ok, err)
		}
		if ok, err := docstore.ContainerExists(ctx, client, database, "matches"); err != nil || ok {
			t.Errorf("Expected no matches container, got %v / %v", ok, err)
		}
	})
}
