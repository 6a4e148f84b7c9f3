// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/pipeline"
)

// headersOnly exposes the header map of a writer and drops everything
// else, so rs/cors can set preflight headers while the pipeline keeps
// control over the status line.
type headersOnly struct {
	header http.Header
}

func (w headersOnly) Header() http.Header { return w.header }

func (w headersOnly) Write(b []byte) (int, error) { return len(b), nil }

func (w headersOnly) WriteHeader(int) {}

// corsHeaders sets permissive CORS headers. A preflight request is answered
// here with 204.
func (h *Handler) corsHeaders(c *pipeline.Context) pipeline.Result {
	if !isPreflight(c.Request) {
		h.cors.HandlerFunc(c.Writer, c.Request)
		return pipeline.Continue()
	}

	h.cors.HandlerFunc(headersOnly{header: c.Writer.Header()}, c.Request)
	return pipeline.Respond(pipeline.Response{Status: http.StatusNoContent})
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
