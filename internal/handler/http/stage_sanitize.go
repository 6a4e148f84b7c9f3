// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/MKhiriev/go-secure-api/internal/security"
)

const (
	sanitizerNoSQL = "nosql"
	sanitizerXSS   = "xss"
)

// sanitize removes operator keys and markup from the query right away and
// registers the same sanitizers for the body, which is decoded by a later
// stage.
func (h *Handler) sanitize(c *pipeline.Context) pipeline.Result {
	if q := c.Query(); len(q) > 0 {
		q = security.StripOperatorValues(q)
		c.SetQuery(h.xss.SanitizeValues(q))
	}

	c.AddBodySanitizer(sanitizerNoSQL, security.StripOperatorKeys)
	c.AddBodySanitizer(sanitizerXSS, h.xss.Sanitize)

	return pipeline.Continue()
}
