// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mock"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/MKhiriev/go-secure-api/internal/ratelimit"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const rateLimitMessage = "Too many request from this IP, please try again in an hour!"

func newTestConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-secret",
			TokenIssuer:   "go-secure-api",
			TokenDuration: time.Hour,
		},
		Security: config.Security{
			RateLimit: config.RateLimit{
				Max:     100,
				Window:  time.Hour,
				Prefix:  "/api",
				Message: rateLimitMessage,
				Store:   config.RateLimitStoreMemory,
			},
			BodyLimit: 100 << 10,
		},
		Port: 3000,
		Mode: config.ModeProduction,
	}
}

type testHandler struct {
	*Handler
	authSvc *mock.MockAuthService
	userSvc *mock.MockUserService
	logs    *syncBuffer
}

// syncBuffer is a bytes.Buffer safe for concurrent writes from the logger.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestHandler(t *testing.T, cfg *config.StructuredConfig) *testHandler {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	users := mock.NewMockUserService(ctrl)
	services := &service.Services{AuthService: auth, UserService: users}

	logs := &syncBuffer{}
	log := &logger.Logger{Logger: zerolog.New(logs)}

	rl := cfg.Security.RateLimit
	h := NewHandler(services, cfg, ratelimit.NewMemoryStore(rl.Max, rl.Window), log)

	return &testHandler{Handler: h, authSvc: auth, userSvc: users, logs: logs}
}

// runStages serves req through the given stages in front of a dispatch that
// answers 200 "dispatched". The pipeline context seen by the dispatch is
// returned; it is nil when a stage stopped the request.
func runStages(t *testing.T, h *Handler, req *http.Request, stages ...pipeline.Stage) (*httptest.ResponseRecorder, *pipeline.Context) {
	t.Helper()

	var seen *pipeline.Context
	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := pipeline.FromRequest(r)
		require.True(t, ok)
		c.Request = r
		seen = c
		_, _ = io.WriteString(w, "dispatched")
	})

	rec := httptest.NewRecorder()
	pipeline.New(h, dispatch, stages...).ServeHTTP(rec, req)
	return rec, seen
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// failingStore is a rate-limit store whose backend is down.
type failingStore struct{}

func (failingStore) Take(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.Join(ratelimit.ErrRedisUnavailable, errors.New("dial tcp: connection refused"))
}

// newLoggedRequest returns a request carrying the handler's logger, as the
// trace-ID stage would attach it.
func newLoggedRequest(h *testHandler, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(h.logger.WithContext(req.Context()))
}
