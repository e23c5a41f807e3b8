// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"petdor-server/assessments"
	"petdor-server/config"
	"petdor-server/db"
	"petdor-server/delivery"
	"petdor-server/middlewares"
	"petdor-server/notifications"
	"petdor-server/resettokens"
	"petdor-server/users"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler bundles the wired components; every route is a method on it.
type Handler struct {
	Conn        *gorm.DB
	Config      *config.Config
	Auth        *middlewares.Auth
	Users       *users.Store
	Resets      *resettokens.Manager
	Assessments *assessments.Store
	Dispatcher  *delivery.Dispatcher
	Mailer      notifications.Mailer
}

// httpError translates domain errors into user-safe HTTP errors. Storage
// faults are already logged where they occur and surface as a non-specific
// failure, never as driver text.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, users.ErrDuplicateEmail):
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This email is already registered, please try another one.",
		}
	case errors.Is(err, users.ErrInvalidCredentials):
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Credentials are incorrect, please check your email and password",
		}
	case errors.Is(err, resettokens.ErrTokenNotFound):
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid password reset token",
		}
	case errors.Is(err, resettokens.ErrTokenAlreadyUsed):
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "This password reset token has already been used",
		}
	case errors.Is(err, resettokens.ErrTokenExpired):
		return &echo.HTTPError{
			Code:    http.StatusGone,
			Message: "Password reset token has expired. Please request a new one.",
		}
	case errors.Is(err, db.ErrUnavailable):
		return echo.ErrInternalServerError
	}
	return echo.ErrInternalServerError
}
