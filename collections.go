/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/suparena/docstore/datastore"
)

// TypedCollections holds named collections of records of type T.
type TypedCollections[T any] struct {
	mu          sync.RWMutex
	collections map[string]datastore.Collection[T]
}

// NewTypedCollections creates an empty registry for type T.
func NewTypedCollections[T any]() *TypedCollections[T] {
	return &TypedCollections[T]{
		collections: make(map[string]datastore.Collection[T]),
	}
}

// Register adds a collection under name.
func (tc *TypedCollections[T]) Register(name string, coll datastore.Collection[T]) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if _, exists := tc.collections[name]; exists {
		return fmt.Errorf("collection %q already registered", name)
	}
	tc.collections[name] = coll
	return nil
}

// Get retrieves a collection by name.
func (tc *TypedCollections[T]) Get(name string) (datastore.Collection[T], error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	coll, exists := tc.collections[name]
	if !exists {
		return nil, fmt.Errorf("collection %q not found", name)
	}
	return coll, nil
}

// Remove deletes a collection by name.
func (tc *TypedCollections[T]) Remove(name string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if _, exists := tc.collections[name]; !exists {
		return fmt.Errorf("collection %q not found", name)
	}
	delete(tc.collections, name)
	return nil
}

// Names returns the registered names in sorted order.
func (tc *TypedCollections[T]) Names() []string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	names := make([]string, 0, len(tc.collections))
	for name := range tc.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MultiTypeCollections keeps one TypedCollections per record type.
type MultiTypeCollections struct {
	mu    sync.Mutex
	types map[reflect.Type]any
}

// NewMultiTypeCollections creates an empty registry.
func NewMultiTypeCollections() *MultiTypeCollections {
	return &MultiTypeCollections{
		types: make(map[reflect.Type]any),
	}
}

// CollectionsOf returns the registry for type T, creating it if necessary.
func CollectionsOf[T any](m *MultiTypeCollections) *TypedCollections[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	typ := reflect.TypeFor[T]()
	if tc, exists := m.types[typ]; exists {
		return tc.(*TypedCollections[T])
	}
	tc := NewTypedCollections[T]()
	m.types[typ] = tc
	return tc
}

// RegisterCollection registers coll under name for type T.
func RegisterCollection[T any](m *MultiTypeCollections, name string, coll datastore.Collection[T]) error {
	return CollectionsOf[T](m).Register(name, coll)
}

// GetCollection retrieves the collection of type T registered under name.
func GetCollection[T any](m *MultiTypeCollections, name string) (datastore.Collection[T], error) {
	return CollectionsOf[T](m).Get(name)
}

// RemoveCollection removes the collection of type T registered under name.
func RemoveCollection[T any](m *MultiTypeCollections, name string) error {
	return CollectionsOf[T](m).Remove(name)
}

// CollectionNames lists the names registered for type T.
func CollectionNames[T any](m *MultiTypeCollections) []string {
	return CollectionsOf[T](m).Names()
}
