// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
)

// errorDetails is the "error" member of a development error response.
type errorDetails struct {
	StatusCode    int    `json:"statusCode"`
	Status        string `json:"status"`
	IsOperational bool   `json:"isOperational"`
	Cause         string `json:"cause,omitempty"`
}

// HandleError is the single sink for every error raised by a stage, the
// router or a route handler.
//
// The error is classified first: an [apperror.Error] keeps its status code,
// a known sentinel becomes an operational error (see errorStatusMap) and
// anything else becomes a non-operational 500. In development mode the
// response carries the error details and the stack. In production an
// operational error exposes only its status and message, and every other
// error is replaced with a generic message.
//
// If the response has already been committed, the error is only logged.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	appErr := apperror.Unexpected(toAppError(err))

	if committed, ok := w.(interface{ Written() bool }); ok && committed.Written() {
		log.Error().Err(err).Int("status", appErr.StatusCode).Msg("error raised after the response was sent")
		return
	}

	if appErr.IsOperational {
		log.Warn().Err(err).Int("status", appErr.StatusCode).Msg("request failed")
	} else {
		log.Error().Err(err).Int("status", appErr.StatusCode).Str("stack", appErr.Stack).Msg("unexpected error")
	}

	if _, err = utils.WriteJSON(w, h.errorResponse(appErr), appErr.StatusCode); err != nil {
		log.Err(err).Msg("error response was not written")
	}
}

func (h *Handler) errorResponse(appErr *apperror.Error) models.ErrorResponse {
	if h.cfg.IsDevelopment() {
		details := errorDetails{
			StatusCode:    appErr.StatusCode,
			Status:        appErr.Status,
			IsOperational: appErr.IsOperational,
		}
		if appErr.Cause != nil {
			details.Cause = appErr.Cause.Error()
		}

		return models.ErrorResponse{
			Status:  appErr.Status,
			Error:   details,
			Message: appErr.Message,
			Stack:   appErr.Stack,
		}
	}

	if appErr.IsOperational {
		return models.ErrorResponse{Status: appErr.Status, Message: appErr.Message}
	}

	return models.ErrorResponse{Status: apperror.StatusError, Message: app.MsgSomethingWentWrong}
}
