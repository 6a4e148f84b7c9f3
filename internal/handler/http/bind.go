// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
)

// bindBody copies the body decoded and sanitized by the body stage into dst.
// Route handlers never read r.Body: a request whose content type the body
// stage does not parse binds to the zero value of dst.
func bindBody(r *http.Request, dst any) error {
	c, ok := pipeline.FromRequest(r)
	if !ok || c.Body == nil {
		return nil
	}

	src := c.Body
	// Repeated form fields resolve like repeated query parameters: last wins.
	if form, ok := src.(url.Values); ok {
		fields := make(map[string]string, len(form))
		for key := range form {
			fields[key] = form[key][len(form[key])-1]
		}
		src = fields
	}

	raw, err := json.Marshal(src)
	if err != nil {
		return apperror.Wrap(err, app.MsgInvalidJSON, http.StatusBadRequest)
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return apperror.Wrap(err, app.MsgInvalidJSON, http.StatusBadRequest)
	}
	return nil
}
