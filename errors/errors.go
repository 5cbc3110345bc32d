/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. RemoteError maps its canonical codes onto them.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConditionFailed = errors.New("condition check failed")
	ErrThrottled       = errors.New("request throttled")

	// ErrNoIndexMap means a record type has no key layout registered.
	ErrNoIndexMap = errors.New("no index map found for type")

	// ErrCancelled ends a sequence whose context was cancelled.
	ErrCancelled = errors.New("sequence cancelled")
)

// KeyError names the key a write or lookup collided with or missed.
// Err is ErrAlreadyExists or ErrNotFound.
type KeyError struct {
	Container string
	Key       string
	Err       error
}

func (e *KeyError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("key %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("%s: key %q: %v", e.Container, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// NewDuplicateKeyError reports key as already taken in container.
func NewDuplicateKeyError(container, key string) error {
	return &KeyError{Container: container, Key: key, Err: ErrAlreadyExists}
}

// NewMissingKeyError reports key as absent from container.
func NewMissingKeyError(container, key string) error {
	return &KeyError{Container: container, Key: key, Err: ErrNotFound}
}

// ValidationError rejects a record before it reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid record: " + e.Message
	}
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool   { return errors.Is(err, ErrAlreadyExists) }
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }
func IsThrottled(err error) bool       { return errors.Is(err, ErrThrottled) }
func IsCancelled(err error) bool       { return errors.Is(err, ErrCancelled) }
