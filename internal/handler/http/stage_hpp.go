// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
)

// parameterPollution collapses repeated query parameters to their last
// value unless the parameter is whitelisted.
func (h *Handler) parameterPollution(c *pipeline.Context) pipeline.Result {
	cleaned, polluted := h.hpp.Apply(c.Query())
	if polluted == nil {
		return pipeline.Continue()
	}

	logger.FromRequest(c.Request).Debug().Any("polluted", polluted).Msg("duplicate query parameters collapsed")
	c.SetQuery(cleaned)

	return pipeline.Continue()
}
