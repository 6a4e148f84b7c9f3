// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import "net/http"

// ResponseWriter is a thin decorator around [http.ResponseWriter] that
// intercepts WriteHeader and Write calls to capture response metadata.
//
// It guarantees that WriteHeader is forwarded to the underlying writer
// exactly once: subsequent calls are silently ignored. The error handler
// uses [ResponseWriter.Written] to avoid sending a second response, and the
// request logging stage reads the status and size after the response has
// been sent.
type ResponseWriter struct {
	http.ResponseWriter

	// status is the HTTP status code recorded on the first WriteHeader call.
	status int

	// wroteHeader reports whether WriteHeader has already been called.
	wroteHeader bool

	// size is the running total of bytes written to the response body.
	size int
}

// NewResponseWriter wraps w. If w already is a *ResponseWriter it is
// returned as is.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader records the status code and forwards it to the underlying
// [http.ResponseWriter] exactly once.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write writes b to the underlying [http.ResponseWriter] and accumulates
// the number of bytes written. If WriteHeader has not been called before
// Write, it implicitly calls WriteHeader with [http.StatusOK].
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Status returns the status code sent, or zero if nothing was sent yet.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int {
	return w.size
}

// Written reports whether the response header has been sent.
func (w *ResponseWriter) Written() bool {
	return w.wroteHeader
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
