// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/apperror"
	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/store"
)

type errorStatus struct {
	code    int
	message string
}

// errorStatusMap translates sentinel errors of the lower layers into
// operational errors. Errors missing from the map stay unexpected.
var errorStatusMap = map[error]errorStatus{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrInvalidEmail:            {http.StatusBadRequest, app.MsgInvalidEmail},
	service.ErrPasswordTooShort:        {http.StatusBadRequest, app.MsgPasswordTooShort},
	service.ErrPasswordsDoNotMatch:     {http.StatusBadRequest, app.MsgPasswordsDoNotMatch},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgIncorrectCredentials},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgInvalidToken},

	store.ErrEmailAlreadyExists:  {http.StatusConflict, app.MsgEmailAlreadyExists},
	store.ErrNoUserWasFound:      {http.StatusNotFound, app.MsgNoUserWithID},
	store.ErrDatabaseUnavailable: {http.StatusServiceUnavailable, app.MsgDatabaseUnavailable},

	ErrNoToken:            {http.StatusUnauthorized, app.MsgNotLoggedIn},
	ErrUserNoLongerExists: {http.StatusUnauthorized, app.MsgUserNoLongerExists},
	ErrNoPermission:       {http.StatusForbidden, app.MsgNoPermission},
	ErrInvalidUserID:      {http.StatusBadRequest, app.MsgInvalidUserID},
}

// toAppError returns err unchanged when it already carries an
// [apperror.Error], the matching operational error when err wraps a known
// sentinel, and err itself otherwise.
func toAppError(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return apperror.Wrap(err, status.message, status.code)
		}
	}
	return err
}
