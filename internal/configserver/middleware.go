// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configserver

import (
	"net/http"

	"github.com/google/uuid"

	log "github.com/sirupsen/logrus"
)

// RequestIDMiddleware assigns every request a fresh id, returned in
// the X-Request-Id response header. A well-formed incoming id is kept.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		if err != nil {
			requestID = uuid.New()
		}
		r.Header.Set(RequestIDHeader, requestID.String())
		w.Header().Set(RequestIDHeader, requestID.String())
		next.ServeHTTP(w, r)
	})
}

// AccessLogMiddleware writes api access log.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithField("requestId", r.Header.Get(RequestIDHeader)).Debug("API request - ", r.Method, " ", r.URL)
		next.ServeHTTP(w, r)
	})
}
