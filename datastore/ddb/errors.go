/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"errors"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	storeerrors "github.com/suparena/docstore/errors"
)

// errorCodes maps DynamoDB error codes onto canonical codes and statuses.
var errorCodes = map[string]struct {
	code   string
	status int
}{
	"ConditionalCheckFailedException":          {storeerrors.CodeConflict, http.StatusConflict},
	"TransactionConflictException":             {storeerrors.CodeConflict, http.StatusConflict},
	"ProvisionedThroughputExceededException":   {storeerrors.CodeTooManyRequests, http.StatusTooManyRequests},
	"RequestLimitExceeded":                     {storeerrors.CodeTooManyRequests, http.StatusTooManyRequests},
	"ThrottlingException":                      {storeerrors.CodeTooManyRequests, http.StatusTooManyRequests},
	"ResourceNotFoundException":                {storeerrors.CodeNotFound, http.StatusNotFound},
	"ValidationException":                      {storeerrors.CodeBadRequest, http.StatusBadRequest},
	"SerializationException":                   {storeerrors.CodeBadRequest, http.StatusBadRequest},
	"ItemCollectionSizeLimitExceededException": {storeerrors.CodeBadRequest, http.StatusBadRequest},
	"InternalServerError":                      {storeerrors.CodeInternalServerError, http.StatusInternalServerError},
	"ServiceUnavailable":                       {storeerrors.CodeServiceUnavailable, http.StatusServiceUnavailable},
}

// translateError converts an API error reported by DynamoDB into a
// *errors.RemoteError. Known codes take their canonical code and status.
// Other codes are kept as reported, with the status of the response when
// there is one. Transport failures, context errors and anything else the
// service did not answer with are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	code, status := apiErr.ErrorCode(), 0
	if mapped, ok := errorCodes[code]; ok {
		code, status = mapped.code, mapped.status
	} else {
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			status = respErr.HTTPStatusCode()
		}
	}

	remote := storeerrors.NewRemoteError(code, status, apiErr.ErrorMessage(), err)
	remote.Reason = apiErr.ErrorCode()
	return remote
}
