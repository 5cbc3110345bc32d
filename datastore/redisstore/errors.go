/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisstore

import (
	"errors"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	storeerrors "github.com/suparena/docstore/errors"
)

// errorPrefixes maps Redis error prefixes onto HTTP statuses.
var errorPrefixes = map[string]int{
	"BUSY":        http.StatusServiceUnavailable,
	"LOADING":     http.StatusServiceUnavailable,
	"MASTERDOWN":  http.StatusServiceUnavailable,
	"TRYAGAIN":    http.StatusServiceUnavailable,
	"CLUSTERDOWN": http.StatusServiceUnavailable,
	"READONLY":    http.StatusServiceUnavailable,
	"OOM":         http.StatusInsufficientStorage,
	"NOAUTH":      http.StatusUnauthorized,
	"WRONGPASS":   http.StatusUnauthorized,
	"NOPERM":      http.StatusForbidden,
	"WRONGTYPE":   http.StatusBadRequest,
}

// translateError converts a Redis server reply error into a *errors.RemoteError.
// redis.Nil and connection errors are returned unchanged.
func translateError(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	var redisErr redis.Error
	if !errors.As(err, &redisErr) {
		return err
	}

	msg := redisErr.Error()
	prefix, rest, found := strings.Cut(msg, " ")
	if !found || prefix != strings.ToUpper(prefix) {
		// no uppercase prefix: treat as a generic ERR reply
		prefix, rest = "ERR", msg
	}

	status, known := errorPrefixes[prefix]
	code := prefix
	if known {
		code = storeerrors.CodeForStatus(status)
	}
	remote := storeerrors.NewRemoteError(code, status, rest, err)
	remote.Reason = prefix
	return remote
}
