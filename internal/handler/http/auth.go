// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/go-chi/chi/v5"
)

const (
	tokenCookieName = "jwt"

	loggedOutValue = "loggedout"
	loggedOutTTL   = 10 * time.Second
)

func (h *Handler) authRoutes(r chi.Router) {
	r.Post("/register", h.handle(h.register))
	r.Post("/login", h.handle(h.login))
	r.Get("/logout", h.handle(h.logout))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) error {
	var req models.RegisterRequest
	if err := bindBody(r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req)
	if err != nil {
		return err
	}

	logger.FromRequest(r).Info().Int64("id", user.UserID).Msg("user registered")
	return h.sendToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := bindBody(r, &req); err != nil {
		return err
	}

	if req.Email == "" || req.Password == "" {
		return apperror.BadRequest(app.MsgProvideEmailPassword)
	}

	user, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		return err
	}

	logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("user successfully logged in")
	return h.sendToken(w, r, user, http.StatusOK)
}

// logout overwrites the token cookie with a short-lived placeholder.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    loggedOutValue,
		Path:     "/",
		Expires:  time.Now().Add(loggedOutTTL),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})

	_, err := utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
	return err
}

// sendToken issues a token for user, stores it in an HTTP-only cookie and
// returns it in the body together with the user.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, user models.User, statusCode int) error {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.App.TokenDuration),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})

	resp := models.AuthResponse{
		Status: models.StatusSuccess,
		Token:  token.SignedString,
		Data:   &models.UserData{User: user},
	}
	_, err = utils.WriteJSON(w, resp, statusCode)
	return err
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
