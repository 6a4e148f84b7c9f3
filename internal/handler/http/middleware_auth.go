// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The token is taken from the "Authorization: Bearer" header, or from the
// jwt cookie when the header is absent. It is validated via
// [service.AuthService.ParseToken] and the account it belongs to is loaded;
// on success the user is stored in the request context under
// [utils.UserCtxKey] before delegating to the next handler.
//
// The request fails with 401 when no token is present, when the token is
// invalid or expired, or when its account no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without token")
			h.HandleError(w, r, err)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}
		if token.UserID <= 0 {
			h.HandleError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		user, err := h.services.UserService.GetUser(ctx, token.UserID)
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Int64("id", token.UserID).Msg("token of a deleted user")
			h.HandleError(w, r, ErrUserNoLongerExists)
			return
		}
		if err != nil {
			h.HandleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// restrictTo allows only users whose role is in roles. It must run after
// auth.
func (h *Handler) restrictTo(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok || !slices.Contains(roles, user.Role) {
				h.HandleError(w, r, ErrNoPermission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest returns the bearer token of the Authorization header or,
// without such a header, the value of the jwt cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return "", errors.Join(ErrNoToken, err)
		}
		return token, nil
	}

	cookie, err := r.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" || cookie.Value == loggedOutValue {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}
