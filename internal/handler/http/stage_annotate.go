// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/MKhiriev/go-secure-api/internal/utils"
)

// annotate greets the request in the log and stamps it with the time it
// reached the router.
func (h *Handler) annotate(c *pipeline.Context) pipeline.Result {
	now := time.Now().UTC()
	c.RequestTime = now
	c.SetContext(utils.WithRequestTime(c.Request.Context(), now))

	logger.FromRequest(c.Request).Info().
		Str("request_time", utils.FormatRequestTime(now)).
		Msg(app.MsgHello)

	return pipeline.Continue()
}
