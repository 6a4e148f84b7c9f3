// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/unrolled/secure"
)

const contentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
	"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
	"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// newSecure configures the hardening headers sent with every response.
func newSecure(cfg *config.StructuredConfig) *secure.Secure {
	s := secure.New(secure.Options{
		AllowedHosts:                  cfg.Security.AllowedHosts,
		STSSeconds:                    15552000,
		STSIncludeSubdomains:          true,
		ForceSTSHeader:                true,
		FrameDeny:                     true,
		CustomFrameOptionsValue:       "SAMEORIGIN",
		ContentTypeNosniff:            true,
		BrowserXssFilter:              true,
		CustomBrowserXssValue:         "0",
		ContentSecurityPolicy:         contentSecurityPolicy,
		ReferrerPolicy:                "no-referrer",
		CrossOriginOpenerPolicy:       "same-origin",
		CrossOriginResourcePolicy:     "same-origin",
		XDNSPrefetchControl:           "off",
		XPermittedCrossDomainPolicies: "none",
		IsDevelopment:                 cfg.IsDevelopment(),
	})

	// A rejected host is answered by the error handler.
	s.SetBadHostHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	return s
}

// secureHeaders writes the hardening headers. It fails only when the Host
// header is not in the allowed list.
func (h *Handler) secureHeaders(c *pipeline.Context) pipeline.Result {
	if err := h.secure.Process(c.Writer, c.Request); err != nil {
		return pipeline.Fail(apperror.Wrap(err, app.MsgInvalidHost, http.StatusBadRequest))
	}

	c.Writer.Header().Set("Origin-Agent-Cluster", "?1")
	return pipeline.Continue()
}
