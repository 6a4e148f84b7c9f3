// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mock"
	"github.com/MKhiriev/go-secure-api/internal/workers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeServer records the lifecycle calls made by Startup.
type fakeServer struct {
	mu        sync.Mutex
	listened  bool
	listenErr error
	stopped   chan struct{}
	once      sync.Once
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{})}
}

func (f *fakeServer) Listen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listened = true
	return f.listenErr
}

func (f *fakeServer) Serve() error {
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.once.Do(func() { close(f.stopped) })
	return nil
}

func (f *fakeServer) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 3000}
}

func (f *fakeServer) Listened() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listened
}

// migratingConnector is a connector that also applies migrations.
type migratingConnector struct {
	migrated   bool
	migrateErr error
}

func (c *migratingConnector) Connect(context.Context) error { return nil }

func (c *migratingConnector) Migrate(context.Context) error {
	c.migrated = true
	return c.migrateErr
}

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

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Port:   3000,
		Server: config.Server{ShutdownTimeout: time.Second},
	}
}

func runAsync(ctx context.Context, s *Startup) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func TestStartup_ConnectorFailureNeverListens(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := mock.NewMockConnector(ctrl)
	connectErr := errors.New("connection refused")
	connector.EXPECT().Connect(gomock.Any()).Return(connectErr)

	logs := &syncBuffer{}
	srv := newFakeServer()
	s := NewStartup(connector, srv, nil, testConfig(), &logger.Logger{Logger: zerolog.New(logs)})
	assert.Equal(t, StateInit, s.State())

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s)

	require.Eventually(t, func() bool { return s.State() == StateFailed }, time.Second, time.Millisecond)

	select {
	case <-done:
		t.Fatal("Run returned before the context was cancelled")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	err := <-done

	assert.ErrorIs(t, err, connectErr)
	assert.False(t, srv.Listened())
	assert.Contains(t, logs.String(), "connection refused")
	assert.NotContains(t, logs.String(), "listening on port")
}

func TestStartup_ListensAfterConnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := mock.NewMockConnector(ctrl)
	connector.EXPECT().Connect(gomock.Any()).Return(nil)

	var ran bool
	w := workers.NewWorkers(workerFunc(func(context.Context) { ran = true }))

	logs := &syncBuffer{}
	srv := newFakeServer()
	s := NewStartup(connector, srv, w, testConfig(), &logger.Logger{Logger: zerolog.New(logs)})

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s)

	require.Eventually(t, func() bool { return s.State() == StateListening }, time.Second, time.Millisecond)
	assert.True(t, srv.Listened())
	assert.Contains(t, logs.String(), fmt.Sprintf(MsgListening, 3000))

	cancel()
	assert.NoError(t, <-done)
	assert.True(t, ran)
}

func TestStartup_ListenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := mock.NewMockConnector(ctrl)
	connector.EXPECT().Connect(gomock.Any()).Return(nil)

	srv := newFakeServer()
	srv.listenErr = errors.New("address already in use")
	s := NewStartup(connector, srv, nil, testConfig(), logger.Nop())

	err := s.Run(context.Background())

	assert.ErrorIs(t, err, srv.listenErr)
	assert.Equal(t, StateFailed, s.State())
}

func TestStartup_Migrations(t *testing.T) {
	t.Run("applied when enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Storage.DB.Migrate = true
		connector := &migratingConnector{}
		s := NewStartup(connector, newFakeServer(), nil, cfg, logger.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		done := runAsync(ctx, s)
		require.Eventually(t, func() bool { return s.State() == StateListening }, time.Second, time.Millisecond)
		cancel()
		<-done

		assert.True(t, connector.migrated)
	})

	t.Run("skipped when disabled", func(t *testing.T) {
		connector := &migratingConnector{}
		s := NewStartup(connector, newFakeServer(), nil, testConfig(), logger.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		done := runAsync(ctx, s)
		require.Eventually(t, func() bool { return s.State() == StateListening }, time.Second, time.Millisecond)
		cancel()
		<-done

		assert.False(t, connector.migrated)
	})

	t.Run("failure ends in FAILED", func(t *testing.T) {
		cfg := testConfig()
		cfg.Storage.DB.Migrate = true
		connector := &migratingConnector{migrateErr: errors.New("dirty database")}
		srv := newFakeServer()
		s := NewStartup(connector, srv, nil, cfg, logger.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, s.Run(ctx), connector.migrateErr)
		assert.Equal(t, StateFailed, s.State())
		assert.False(t, srv.Listened())
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "INIT", StateInit.String())
	assert.Equal(t, "DB_CONNECTING", StateDBConnecting.String())
	assert.Equal(t, "LISTENING", StateListening.String())
	assert.Equal(t, "FAILED", StateFailed.String())
	assert.Equal(t, "State(9)", State(9).String())
}

type workerFunc func(ctx context.Context)

func (f workerFunc) Run(ctx context.Context) { f(ctx) }
