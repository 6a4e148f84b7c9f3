// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
)

// notFound answers every request no route group matched, including a known
// path called with an unsupported method, so that route existence is not
// leaked through 405 responses.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.HandleError(w, r, apperror.NotFound(fmt.Sprintf(app.MsgNotFound, originalURL(r))))
}

// originalURL returns the request target as the client sent it.
func originalURL(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}
