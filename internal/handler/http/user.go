// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) userRoutes(r chi.Router) {
	r.Use(h.auth)

	r.Get("/me", h.handle(h.me))
	r.Get("/{id}", h.handle(h.getUser))

	r.With(h.restrictTo(models.RoleAdmin)).Get("/", h.handle(h.listUsers))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) error {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return ErrNoToken
	}

	_, err := utils.WriteJSON(w, models.UserResponse{Status: models.StatusSuccess, Data: models.UserData{User: user}}, http.StatusOK)
	return err
}

// getUser returns any account to an admin and only the caller's own
// account to everybody else.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) error {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		return ErrInvalidUserID
	}

	current, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return ErrNoToken
	}
	if current.Role != models.RoleAdmin && current.UserID != userID {
		return ErrNoPermission
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, models.UserResponse{Status: models.StatusSuccess, Data: models.UserData{User: user}}, http.StatusOK)
	return err
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		return err
	}

	resp := models.UsersResponse{
		Status:  models.StatusSuccess,
		Results: len(users),
		Data:    models.UsersData{Users: users},
	}
	_, err = utils.WriteJSON(w, resp, http.StatusOK)
	return err
}
