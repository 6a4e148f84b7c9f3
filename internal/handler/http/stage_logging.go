// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
)

// requestLogging logs one line per request once the response has been sent.
// It is only part of the pipeline in development mode.
func (h *Handler) requestLogging(c *pipeline.Context) pipeline.Result {
	uri := c.Request.RequestURI
	method := c.Request.Method

	c.OnComplete(func(c *pipeline.Context) {
		logger.FromRequest(c.Request).Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(c.Start)).
			Int("size", c.Writer.Size()).
			Send()
	})

	return pipeline.Continue()
}
