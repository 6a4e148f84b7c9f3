// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline runs an ordered list of request stages in front of a
// router.
//
// Each stage returns a [Result]: [Continue] hands the request to the next
// stage, [Respond] ends it with a stage-built response, and [Fail] ends it by
// handing the error to the single [ErrorHandler]. When every stage continues
// the request is dispatched to the router. Panics raised by stages, the
// router or route handlers are recovered and reported to the error handler.
package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-secure-api/internal/apperror"
)

// Pipeline is an [http.Handler] running a fixed list of stages.
type Pipeline struct {
	stages       []Stage
	dispatch     http.Handler
	errorHandler ErrorHandler
}

// New builds a pipeline running stages in the given order before dispatch.
func New(errorHandler ErrorHandler, dispatch http.Handler, stages ...Stage) *Pipeline {
	return &Pipeline{
		stages:       stages,
		dispatch:     dispatch,
		errorHandler: errorHandler,
	}
}

// StageNames returns the stage names in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r)
	defer c.complete()
	defer p.recover(c)

	for _, stage := range p.stages {
		res := stage.Process(c)
		switch res.kind {
		case kindRespond:
			send(c.Writer, res.response)
			return
		case kindFail:
			p.errorHandler.HandleError(c.Writer, c.Request, res.err)
			return
		}
	}

	p.dispatch.ServeHTTP(c.Writer, c.Request)
}

func (p *Pipeline) recover(c *Context) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}

	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	p.errorHandler.HandleError(c.Writer, c.Request, apperror.Unexpected(errors.Join(ErrPanicRecovered, err)))
}

func send(w *ResponseWriter, resp Response) {
	if w.Written() {
		return
	}

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	if len(resp.Body) > 0 {
		w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}
