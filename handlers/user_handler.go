// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"petdor-server/passwordcheck"
	"time"

	"github.com/labstack/echo/v4"
)

// GetUser godoc
// @Summary      Get the authenticated user's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} GetUserResponse   "User profile"
// @Failure      401 {object} echo.HTTPError    "Unauthorized"
// @Failure      500 {object} echo.HTTPError    "Internal server error"
// @Router       /v1/user [get]
func (h *Handler) GetUser(c echo.Context) error {
	logger := c.Logger()

	user, err := h.Auth.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to resolve authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	return c.JSON(http.StatusOK, GetUserResponse{
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
		CRMV:        user.CRMV,
		ClinicID:    user.ClinicID,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	})
}

// ChangePassword godoc
// @Summary      Change the authenticated user's password
// @Description  Verifies the current password before storing the new one.
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Change password request"
// @Success      200 {object} GenericResponse "Password changed successfully"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      401 {object} echo.HTTPError  "Unauthorized or wrong current password"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/user/change-password [post]
func (h *Handler) ChangePassword(c echo.Context) error {
	logger := c.Logger()

	user, err := h.Auth.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to resolve authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid change password request payload:", err)
		return echo.ErrBadRequest
	}

	if req.CurrentPassword == "" {
		logger.Error("Current password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "current_password field is required",
		}
	}

	if req.NewPassword == "" {
		logger.Error("New password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "new_password field is required",
		}
	}

	if _, err := h.Users.Authenticate(user.Email, req.CurrentPassword); err != nil {
		logger.Error("Current password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Current password is incorrect",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("New password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid new password: " + err.Error(),
		}
	}

	if err := h.Users.SetPassword(user.ID, req.NewPassword); err != nil {
		logger.Errorf("Failed to change password: %v", err)
		return httpError(err)
	}

	logger.Infof("Password changed successfully")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Password changed successfully"})
}
