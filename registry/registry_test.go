/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"slices"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docstore/errors"
)

type widget struct{ ID string }

func TestIndexMapRegistry(t *testing.T) {
	if _, ok := GetIndexMap[widget](); ok {
		t.Fatal("Expected no index map before registration")
	}

	src := map[string]string{"PK": "WIDGET#{ID}"}
	RegisterIndexMap[widget](src)
	src["PK"] = "mutated"

	got, ok := GetIndexMap[widget]()
	if !ok || got["PK"] != "WIDGET#{ID}" {
		t.Errorf("Expected registered copy, got %v", got)
	}
	if _, ok := GetIndexMap[*widget](); ok {
		t.Error("Pointer type should be distinct")
	}
}

func TestTypeRegistry(t *testing.T) {
	fn := func(map[string]types.AttributeValue) (interface{}, error) { return &widget{}, nil }
	RegisterType("Widget", fn)

	if _, err := GetUnmarshalFunc("Widget"); err != nil {
		t.Fatalf("Expected registered func, got %v", err)
	}
	_, err := GetUnmarshalFunc("Gadget")
	if !storeerrors.IsNotFound(err) {
		t.Errorf("Expected not found for unknown type, got %v", err)
	}
	if err != nil && err.Error() != `type registry: types: key "Gadget": not found` {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !slices.Contains(RegisteredTypes(), "Widget") {
		t.Errorf("Expected Widget listed, got %v", RegisteredTypes())
	}

	defer func() {
		if recover() == nil {
			t.Error("Duplicate registration should panic")
		}
	}()
	RegisterType("Widget", fn)
}
