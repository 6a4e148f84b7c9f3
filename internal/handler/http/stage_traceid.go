// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader = "X-Trace-ID"

	// maxTraceIDLength bounds client supplied trace IDs; longer values are
	// replaced with a generated one.
	maxTraceIDLength = 128
)

// traceID reuses the X-Trace-ID request header or generates a UUIDv7,
// echoes it in the response and attaches a child logger carrying it to the
// request context.
func (h *Handler) traceID(c *pipeline.Context) pipeline.Result {
	traceID := c.Request.Header.Get(traceIDHeader)
	if traceID == "" || len(traceID) > maxTraceIDLength {
		traceID = h.traceIDs.Generate()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
		return zc.Str("trace_id", traceID)
	})
	c.SetContext(l.WithContext(c.Request.Context()))

	c.Writer.Header().Set(traceIDHeader, traceID)
	return pipeline.Continue()
}
