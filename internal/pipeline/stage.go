// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import "net/http"

// Stage is one step of the request pipeline.
type Stage interface {
	// Name identifies the stage in logs and in [Pipeline.StageNames].
	Name() string

	// Process inspects or modifies the request context and decides whether
	// the request continues, is answered, or fails.
	Process(c *Context) Result
}

// ErrorHandler turns an error into the final response of a request.
type ErrorHandler interface {
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// ErrorHandlerFunc adapts a function to [ErrorHandler].
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

func (f ErrorHandlerFunc) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	f(w, r, err)
}

type stageFunc struct {
	name string
	fn   func(c *Context) Result
}

// NewStage builds a [Stage] from a name and a function.
func NewStage(name string, fn func(c *Context) Result) Stage {
	return stageFunc{name: name, fn: fn}
}

func (s stageFunc) Name() string { return s.name }

func (s stageFunc) Process(c *Context) Result { return s.fn(c) }
