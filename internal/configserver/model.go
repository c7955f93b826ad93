// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configserver

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

const (
	errorTypeHandlerNotFound   = "Config.HandlerNotFound"
	errorTypeLoggerNotFound    = "Config.LoggerNotFound"
	errorTypeUnsupportedFormat = "Config.UnsupportedFormat"
	errorTypeInternal          = "InternalServerError"

	// RequestIDHeader carries the id assigned to each request
	RequestIDHeader = "X-Request-Id"
)
