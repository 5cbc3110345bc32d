/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"slices"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI is an in-process stand-in for the DynamoDB client.
type fakeAPI struct {
	mu sync.Mutex

	items  map[string]avMap // "<table>/<PK>/<SK>" -> item
	puts   []*sdk.PutItemInput
	putErr error

	queryPages  []*sdk.QueryOutput
	queryInputs []*sdk.QueryInput
	scanPages   []*sdk.ScanOutput
	scanInputs  []*sdk.ScanInput

	tables    []string
	listCalls int
	listErr   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[string]avMap)}
}

func (f *fakeAPI) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}

	key := aws.ToString(in.TableName) + "/" + scalarString(in.Item["PK"]) + "/" + scalarString(in.Item["SK"])
	if _, exists := f.items[key]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	f.items[key] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryInputs = append(f.queryInputs, in)
	return f.queryPages[len(f.queryInputs)-1], nil
}

func (f *fakeAPI) Scan(ctx context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanInputs = append(f.scanInputs, in)
	return f.scanPages[len(f.scanInputs)-1], nil
}

func (f *fakeAPI) ListTables(ctx context.Context, in *sdk.ListTablesInput, _ ...func(*sdk.Options)) (*sdk.ListTablesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	names := slices.Sorted(slices.Values(f.tables))
	start := 0
	if in.ExclusiveStartTableName != nil {
		start, _ = slices.BinarySearch(names, *in.ExclusiveStartTableName)
		start++
	}
	end := len(names)
	if in.Limit != nil && start+int(*in.Limit) < end {
		end = start + int(*in.Limit)
	}

	out := &sdk.ListTablesOutput{TableNames: names[start:end]}
	if end < len(names) {
		out.LastEvaluatedTableName = aws.String(names[end-1])
	}
	return out, nil
}

func (f *fakeAPI) stored(table, pk, sk string) (avMap, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[table+"/"+pk+"/"+sk]
	return item, ok
}
