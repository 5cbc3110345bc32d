/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Canonical status codes shared by every backend. Backends translate their
// vendor-specific codes onto these and keep the vendor code in RemoteError.Reason.
const (
	CodeBadRequest          = "BadRequest"
	CodeNotFound            = "NotFound"
	CodeRequestTimeout      = "RequestTimeout"
	CodeConflict            = "Conflict"
	CodePreconditionFailed  = "PreconditionFailed"
	CodeTooManyRequests     = "TooManyRequests"
	CodeInternalServerError = "InternalServerError"
	CodeServiceUnavailable  = "ServiceUnavailable"
)

// RemoteError is a failure reported by the remote store itself: the request
// reached the store and the store rejected it with a status and a message.
type RemoteError struct {
	// Code is the status/category code, canonical where one applies.
	Code string
	// StatusCode is the HTTP-equivalent status, or 0 when unknown.
	StatusCode int
	// Message is the store's human-readable explanation.
	Message string
	// Reason is the vendor-specific code (e.g. "ConditionalCheckFailedException").
	Reason string
	// Err is the underlying SDK error.
	Err error
}

func (e *RemoteError) Error() string {
	if e.Reason != "" && e.Reason != e.Code {
		return fmt.Sprintf("remote store returned %s (%s): %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("remote store returned %s: %s", e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is lets canonical codes match the package sentinels.
func (e *RemoteError) Is(target error) bool {
	switch e.Code {
	case CodeConflict:
		return target == ErrAlreadyExists
	case CodeNotFound:
		return target == ErrNotFound
	case CodePreconditionFailed:
		return target == ErrConditionFailed
	case CodeTooManyRequests:
		return target == ErrThrottled
	case CodeBadRequest:
		return target == ErrInvalidInput
	}
	return false
}

// NewRemoteError creates a RemoteError. When statusCode is non-zero and code is
// empty, the code is derived from the HTTP status text.
func NewRemoteError(code string, statusCode int, message string, err error) *RemoteError {
	if code == "" && statusCode != 0 {
		code = CodeForStatus(statusCode)
	}
	return &RemoteError{
		Code:       code,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// CodeForStatus converts an HTTP status into a canonical code, e.g. 409 -> "Conflict".
func CodeForStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return fmt.Sprintf("Status%d", status)
	}
	var b strings.Builder
	for _, word := range strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == '-' }) {
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}

// Kind is the closed set of failure categories a write or fetch can end in.
type Kind int

const (
	// KindUnclassified covers everything the store did not report itself:
	// timeouts, transport faults, serialization faults, cancellations, panics.
	KindUnclassified Kind = iota
	// KindRemote is a structured rejection by the remote store.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	default:
		return "unclassified"
	}
}

// Fault is the classified form of a failure.
type Fault struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// Classify sorts err into a Fault. A RemoteError anywhere in the chain makes
// it KindRemote; anything else is KindUnclassified.
func Classify(err error) Fault {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return Fault{
			Kind:    KindRemote,
			Code:    remote.Code,
			Message: remote.Message,
			Err:     err,
		}
	}
	return Fault{Kind: KindUnclassified, Err: err}
}

// Describe renders a fault as a single human-readable sentence.
func (f Fault) Describe() string {
	switch f.Kind {
	case KindRemote:
		return fmt.Sprintf("Received %s (%s).", f.Code, f.Message)
	default:
		return fmt.Sprintf("Exception %v.", f.Err)
	}
}
