// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

const (
	authPrefix = "/api/v1/auth"
	userPrefix = "/api/v1/user"
)

// Stage names in pipeline order.
const (
	stageTraceID   = "traceid"
	stageHeaders   = "headers"
	stageRateLimit = "ratelimit"
	stageSanitize  = "sanitize"
	stageHPP       = "hpp"
	stageCORS      = "cors"
	stageBody      = "body"
	stageLogging   = "logging"
	stageAnnotate  = "annotate"
)

// RouteGroup is a set of routes mounted under one path prefix.
type RouteGroup interface {
	Prefix() string
	Routes() http.Handler
}

type routeGroup struct {
	prefix string
	routes func(r chi.Router)
}

func (g routeGroup) Prefix() string { return g.prefix }

func (g routeGroup) Routes() http.Handler {
	router := chi.NewRouter()
	g.routes(router)
	return router
}

// appHandler is a route handler that reports failures by returning them.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc, sending returned errors to the
// error handler.
func (h *Handler) handle(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.HandleError(w, r, err)
		}
	}
}

// Init assembles the request pipeline in front of the router.
func (h *Handler) Init() *pipeline.Pipeline {
	return pipeline.New(h, h.router(), h.stages()...)
}

func (h *Handler) stages() []pipeline.Stage {
	stages := []pipeline.Stage{
		pipeline.NewStage(stageTraceID, h.traceID),
		pipeline.NewStage(stageHeaders, h.secureHeaders),
		pipeline.NewStage(stageRateLimit, h.rateLimit),
		pipeline.NewStage(stageSanitize, h.sanitize),
		pipeline.NewStage(stageHPP, h.parameterPollution),
		pipeline.NewStage(stageCORS, h.corsHeaders),
		pipeline.NewStage(stageBody, h.parseBody),
	}

	if h.cfg.IsDevelopment() {
		stages = append(stages, pipeline.NewStage(stageLogging, h.requestLogging))
	}

	return append(stages, pipeline.NewStage(stageAnnotate, h.annotate))
}

func (h *Handler) router() *chi.Mux {
	router := chi.NewRouter()

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	for _, group := range h.routeGroups() {
		router.Mount(group.Prefix(), group.Routes())
	}

	return router
}

func (h *Handler) routeGroups() []RouteGroup {
	return []RouteGroup{
		routeGroup{prefix: authPrefix, routes: h.authRoutes},
		routeGroup{prefix: userPrefix, routes: h.userRoutes},
	}
}
