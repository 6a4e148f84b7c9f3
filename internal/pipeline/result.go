// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import "net/http"

type resultKind int

const (
	kindContinue resultKind = iota
	kindRespond
	kindFail
)

// Result is the outcome of a single stage.
type Result struct {
	kind     resultKind
	response Response
	err      error
}

// Response is a complete response produced by a stage that ends the request
// early (a rate-limit rejection, a CORS preflight).
type Response struct {
	Status      int
	ContentType string
	Header      http.Header
	Body        []byte
}

// Continue passes the request to the next stage.
func Continue() Result {
	return Result{kind: kindContinue}
}

// Respond ends the request with resp. Later stages and the router are
// skipped.
func Respond(resp Response) Result {
	return Result{kind: kindRespond, response: resp}
}

// Fail ends the request by handing err to the error handler. Later stages
// and the router are skipped.
func Fail(err error) Result {
	return Result{kind: kindFail, err: err}
}

// IsContinue reports whether r passes the request on.
func (r Result) IsContinue() bool { return r.kind == kindContinue }

// IsRespond reports whether r ends the request with a response.
func (r Result) IsRespond() bool { return r.kind == kindRespond }

// IsFail reports whether r ends the request with an error.
func (r Result) IsFail() bool { return r.kind == kindFail }

// Err returns the error of a failed result.
func (r Result) Err() error { return r.err }

// Response returns the response of a Respond result.
func (r Result) Response() Response { return r.response }
