// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/ratelimit"
	"github.com/MKhiriev/go-secure-api/internal/security"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/rs/cors"
	"github.com/unrolled/secure"
)

type Handler struct {
	services *service.Services
	cfg      *config.StructuredConfig

	rateStore ratelimit.Store
	keyFunc   ratelimit.KeyFunc

	secure   *secure.Secure
	cors     *cors.Cors
	xss      *security.XSSSanitizer
	hpp      *security.HPP
	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, rateStore ratelimit.Store, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		cfg:       cfg,
		rateStore: rateStore,
		keyFunc:   ratelimit.DefaultKeyFunc(cfg.Security.TrustXForwardedFor),
		secure:    newSecure(cfg),
		cors:      cors.AllowAll(),
		xss:       security.NewXSSSanitizer(),
		hpp:       security.NewHPP(cfg.Security.HPPWhitelist),
		traceIDs:  utils.NewUUIDGenerator(),
		logger:    logger,
	}
}
