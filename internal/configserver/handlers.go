// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configserver

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/aws/amazon-mwaa-docker-images/internal/codec"
	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	log "github.com/sirupsen/logrus"
)

func renderError(w http.ResponseWriter, r *http.Request, status int, errorType string, format string, args ...interface{}) {
	render.Status(r, status)
	render.JSON(w, r, &ErrorResponse{
		ErrorType:    errorType,
		ErrorMessage: fmt.Sprintf(format, args...),
	})
}

// renderFormatted writes v as json, or as yaml when ?format=yaml
func renderFormatted(w http.ResponseWriter, r *http.Request, v interface{}) {
	format := codec.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		var err error
		if format, err = codec.ParseFormat(q); err != nil {
			renderError(w, r, http.StatusBadRequest, errorTypeUnsupportedFormat, "Unsupported format %q", q)
			return
		}
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, v, format); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		renderError(w, r, http.StatusInternalServerError, errorTypeInternal, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.WithError(err).Warn("Error while writing response")
	}
}

type pingHandler struct{}

func (h *pingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("pong")); err != nil {
		log.WithError(err).Warn("Failed to write 'pong' response")
	}
}

type configHandler struct {
	cfg *logconfig.Config
}

func (h *configHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	renderFormatted(w, r, h.cfg)
}

type handlerEntryHandler struct {
	cfg *logconfig.Config
}

func (h *handlerEntryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := h.cfg.Handlers[name]
	if !ok {
		renderError(w, r, http.StatusNotFound, errorTypeHandlerNotFound, "Handler %q is not defined", name)
		return
	}
	renderFormatted(w, r, entry)
}

type loggerEntryHandler struct {
	cfg *logconfig.Config
}

func (h *loggerEntryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := h.cfg.Loggers[name]
	if !ok {
		renderError(w, r, http.StatusNotFound, errorTypeLoggerNotFound, "Logger %q is not defined", name)
		return
	}
	renderFormatted(w, r, entry)
}

type routesHandler struct {
	cfg *logconfig.Config
}

func (h *routesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	routes := logconfig.Routes(h.cfg)
	if routes == nil {
		routes = []logconfig.Route{}
	}
	render.JSON(w, r, routes)
}
