// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configserver

import (
	"net/http"

	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"
	"github.com/go-chi/chi"
)

// NewRouter returns a chi router serving the assembled logging configuration.
func NewRouter(cfg *logconfig.Config) http.Handler {
	router := chi.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(AccessLogMiddleware)

	router.Get("/ping", (&pingHandler{}).ServeHTTP)
	router.Get("/logging-config", (&configHandler{cfg: cfg}).ServeHTTP)
	router.Get("/logging-config/handlers/{name}", (&handlerEntryHandler{cfg: cfg}).ServeHTTP)
	router.Get("/logging-config/loggers/{name}", (&loggerEntryHandler{cfg: cfg}).ServeHTTP)
	router.Get("/routes", (&routesHandler{cfg: cfg}).ServeHTTP)

	return router
}
