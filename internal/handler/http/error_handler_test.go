// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_Production(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantStatus  string
		wantMessage string
	}{
		{
			name:        "operational client error",
			err:         apperror.BadRequest("bad input"),
			wantCode:    http.StatusBadRequest,
			wantStatus:  apperror.StatusFail,
			wantMessage: "bad input",
		},
		{
			name:        "operational server error",
			err:         apperror.New("maintenance", http.StatusServiceUnavailable),
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  apperror.StatusError,
			wantMessage: "maintenance",
		},
		{
			name:        "untyped error is hidden",
			err:         errors.New("pq: connection reset by peer"),
			wantCode:    http.StatusInternalServerError,
			wantStatus:  apperror.StatusError,
			wantMessage: app.MsgSomethingWentWrong,
		},
		{
			name:        "wrapped sentinel is mapped",
			err:         fmt.Errorf("creating user: %w", store.ErrEmailAlreadyExists),
			wantCode:    http.StatusConflict,
			wantStatus:  apperror.StatusFail,
			wantMessage: app.MsgEmailAlreadyExists,
		},
		{
			name:        "wrong password",
			err:         service.ErrWrongPassword,
			wantCode:    http.StatusUnauthorized,
			wantStatus:  apperror.StatusFail,
			wantMessage: app.MsgIncorrectCredentials,
		},
		{
			name:        "transient database failure",
			err:         fmt.Errorf("finding user: %w", store.ErrDatabaseUnavailable),
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  apperror.StatusError,
			wantMessage: app.MsgDatabaseUnavailable,
		},
		{
			name:        "missing permission",
			err:         ErrNoPermission,
			wantCode:    http.StatusForbidden,
			wantStatus:  apperror.StatusFail,
			wantMessage: app.MsgNoPermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, newTestConfig())
			rec := httptest.NewRecorder()

			h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decodeBody(t, rec)
			assert.Equal(t, map[string]any{"status": tt.wantStatus, "message": tt.wantMessage}, body)
		})
	}
}

func TestHandleError_Development(t *testing.T) {
	cfg := newTestConfig()
	cfg.Mode = config.ModeDevelopment
	h := newTestHandler(t, cfg)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("disk full"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, apperror.StatusError, body["status"])
	assert.Equal(t, "disk full", body["message"])
	assert.NotEmpty(t, body["stack"])

	details, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, http.StatusInternalServerError, details["statusCode"])
	assert.Equal(t, false, details["isOperational"])
	assert.Equal(t, "disk full", details["cause"])
}

func TestHandleError_Logging(t *testing.T) {
	h := newTestHandler(t, newTestConfig())

	h.HandleError(httptest.NewRecorder(), newLoggedRequest(h, http.MethodGet, "/"), apperror.NotFound("nothing here"))
	assert.Contains(t, h.logs.String(), `"level":"warn"`)
	assert.NotContains(t, h.logs.String(), `"stack"`)

	h.HandleError(httptest.NewRecorder(), newLoggedRequest(h, http.MethodGet, "/"), errors.New("boom"))
	assert.Contains(t, h.logs.String(), `"level":"error"`)
	assert.Contains(t, h.logs.String(), `"stack"`)
}

func TestHandleError_ResponseAlreadySent(t *testing.T) {
	h := newTestHandler(t, newTestConfig())
	rec := httptest.NewRecorder()
	w := pipeline.NewResponseWriter(rec)

	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("partial"))

	h.HandleError(w, newLoggedRequest(h, http.MethodGet, "/"), errors.New("late failure"))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	assert.Contains(t, h.logs.String(), "error raised after the response was sent")
}

func TestPipeline_PanicBecomesGenericError(t *testing.T) {
	h := newTestHandler(t, newTestConfig())

	panicking := pipeline.NewStage("panic", func(*pipeline.Context) pipeline.Result {
		panic("nil map write")
	})
	rec, c := runStages(t, h.Handler, httptest.NewRequest(http.MethodGet, "/", nil), panicking)

	assert.Nil(t, c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"status": apperror.StatusError, "message": app.MsgSomethingWentWrong}, decodeBody(t, rec))
}

func TestToAppError(t *testing.T) {
	appErr := apperror.New("nope", http.StatusForbidden)
	assert.Same(t, appErr, toAppError(appErr))

	plain := errors.New("plain")
	assert.Same(t, plain, toAppError(plain))

	mapped, ok := apperror.As(toAppError(errors.Join(ErrNoToken, errors.New("malformed header"))))
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, mapped.StatusCode)
	assert.Equal(t, app.MsgNotLoggedIn, mapped.Message)
	assert.True(t, mapped.IsOperational)
}
