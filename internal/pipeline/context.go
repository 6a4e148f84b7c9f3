// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type contextKey struct{}

// BodySanitizer rewrites a decoded request body. Maps and slices may be
// modified in place; the returned value replaces the body.
type BodySanitizer func(body any) any

// Context is the per-request state shared by the stages. It is created by
// [Pipeline.ServeHTTP] and discarded once the response has been sent.
type Context struct {
	// Request is the current request. Stages replace it when they derive a
	// new request context.
	Request *http.Request

	// Writer is the guarded response writer of the request.
	Writer *ResponseWriter

	// Body is the decoded request body: map[string]any or []any for JSON,
	// url.Values for forms, nil when the request carries no body.
	Body any

	// RequestTime is the request time annotation.
	RequestTime time.Time

	// Start is the moment the pipeline received the request.
	Start time.Time

	query      url.Values
	sanitizers []namedSanitizer
	hooks      []func(c *Context)
}

type namedSanitizer struct {
	name string
	fn   BodySanitizer
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	c := &Context{
		Writer: NewResponseWriter(w),
		Start:  time.Now(),
	}
	c.Request = r.WithContext(context.WithValue(r.Context(), contextKey{}, c))
	return c
}

// FromRequest returns the pipeline context attached to r, if any.
func FromRequest(r *http.Request) (*Context, bool) {
	c, ok := r.Context().Value(contextKey{}).(*Context)
	return c, ok
}

// WithValue stores val under key in the request context.
func (c *Context) WithValue(key, val any) {
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), key, val))
}

// SetContext replaces the request context. ctx must derive from the current
// one.
func (c *Context) SetContext(ctx context.Context) {
	c.Request = c.Request.WithContext(ctx)
}

// Query returns the working copy of the query parameters. Changes become
// visible to handlers only through [Context.SetQuery].
func (c *Context) Query() url.Values {
	if c.query == nil {
		c.query = c.Request.URL.Query()
	}
	return c.query
}

// SetQuery replaces the query parameters of the request.
func (c *Context) SetQuery(q url.Values) {
	c.query = q
	u := *c.Request.URL
	u.RawQuery = q.Encode()
	c.Request.URL = &u
}

// AddBodySanitizer registers fn to run on the decoded body. Sanitizers run
// in registration order.
func (c *Context) AddBodySanitizer(name string, fn BodySanitizer) {
	c.sanitizers = append(c.sanitizers, namedSanitizer{name: name, fn: fn})
}

// SanitizeBody applies every registered sanitizer to body.
func (c *Context) SanitizeBody(body any) any {
	for _, s := range c.sanitizers {
		body = s.fn(body)
	}
	return body
}

// BodySanitizers returns the names of the registered sanitizers.
func (c *Context) BodySanitizers() []string {
	names := make([]string, 0, len(c.sanitizers))
	for _, s := range c.sanitizers {
		names = append(names, s.name)
	}
	return names
}

// OnComplete registers fn to run after the response has been sent, in
// registration order.
func (c *Context) OnComplete(fn func(c *Context)) {
	c.hooks = append(c.hooks, fn)
}

func (c *Context) complete() {
	for _, fn := range c.hooks {
		fn(c)
	}
}
