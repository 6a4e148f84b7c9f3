// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
)

const (
	mimeJSON = "application/json"
	mimeForm = "application/x-www-form-urlencoded"
)

var errNotObjectOrArray = errors.New("top-level JSON value must be an object or an array")

// parseBody decodes JSON and URL-encoded bodies into c.Body, runs the
// registered body sanitizers on the result and re-encodes the sanitized body
// into the request. Other content types leave c.Body nil, so route handlers
// binding through bindBody see no fields.
func (h *Handler) parseBody(c *pipeline.Context) pipeline.Result {
	r := c.Request
	if r.Body == nil || r.Body == http.NoBody {
		return pipeline.Continue()
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != mimeJSON && mediaType != mimeForm {
		return pipeline.Continue()
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, r.Body, h.cfg.Security.BodyLimit))
	_ = r.Body.Close()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Fail(apperror.Wrap(err, app.MsgRequestTooLarge, http.StatusRequestEntityTooLarge))
		}
		return pipeline.Fail(apperror.Wrap(err, app.MsgInvalidJSON, http.StatusBadRequest))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		setBody(r, raw)
		return pipeline.Continue()
	}

	var encoded []byte
	switch mediaType {
	case mimeJSON:
		body, err := decodeJSON(raw)
		if err != nil {
			return pipeline.Fail(apperror.Wrap(err, app.MsgInvalidJSON, http.StatusBadRequest))
		}

		c.Body = c.SanitizeBody(body)
		if encoded, err = json.Marshal(c.Body); err != nil {
			return pipeline.Fail(err)
		}
	case mimeForm:
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return pipeline.Fail(apperror.Wrap(err, app.MsgInvalidFormData, http.StatusBadRequest))
		}

		c.Body = c.SanitizeBody(values)
		if form, ok := c.Body.(url.Values); ok {
			encoded = []byte(form.Encode())
		}
	}

	setBody(r, encoded)
	return pipeline.Continue()
}

// decodeJSON parses a single JSON object or array. Numbers are kept as
// json.Number so re-encoding does not lose precision.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}

	switch body.(type) {
	case map[string]any, []any:
		return body, nil
	default:
		return nil, errNotObjectOrArray
	}
}

func setBody(r *http.Request, body []byte) {
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
}
