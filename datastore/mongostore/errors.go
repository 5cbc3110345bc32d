/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongostore

import (
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"

	storeerrors "github.com/suparena/docstore/errors"
)

// serverCodes maps MongoDB server error codes onto HTTP statuses.
var serverCodes = map[int]int{
	2:     http.StatusBadRequest,         // BadValue
	13:    http.StatusForbidden,          // Unauthorized
	26:    http.StatusNotFound,           // NamespaceNotFound
	50:    http.StatusRequestTimeout,     // MaxTimeMSExpired
	121:   http.StatusBadRequest,         // DocumentValidationFailure
	11000: http.StatusConflict,           // DuplicateKey
	11001: http.StatusConflict,           // DuplicateKey (legacy)
	16500: http.StatusTooManyRequests,    // request rate too large
	189:   http.StatusServiceUnavailable, // PrimarySteppedDown
	91:    http.StatusServiceUnavailable, // ShutdownInProgress
}

// translateError converts a server-reported failure into a *errors.RemoteError.
// Network, timeout and client-side errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	code, name, message, ok := serverDetail(err)
	if !ok {
		return err
	}

	reason := name
	if reason == "" {
		reason = strconv.Itoa(code)
	}
	status, known := serverCodes[code]
	canonical := reason
	if known {
		canonical = storeerrors.CodeForStatus(status)
	}

	remote := storeerrors.NewRemoteError(canonical, status, message, err)
	remote.Reason = reason
	return remote
}

func serverDetail(err error) (code int, name, message string, ok bool) {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return int(cmdErr.Code), cmdErr.Name, cmdErr.Message, true
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		if len(writeErr.WriteErrors) > 0 {
			we := writeErr.WriteErrors[0]
			return we.Code, "", we.Message, true
		}
		if wce := writeErr.WriteConcernError; wce != nil {
			return wce.Code, wce.Name, wce.Message, true
		}
	}
	return 0, "", "", false
}
