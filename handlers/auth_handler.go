// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"petdor-server/crypto"
	"petdor-server/models"
	"petdor-server/notifications"
	"petdor-server/passwordcheck"
	"petdor-server/users"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func (h *Handler) generateSessionToken(c echo.Context, user *models.User) (string, error) {
	logger := c.Logger()

	sessionToken, err := crypto.GenerateRandomString("st_long_", 32, "hex")
	if err != nil {
		logger.Errorf("Failed to generate session token: %v", err)
		return "", err
	}

	sessionExp := time.Now().Add(30 * 24 * time.Hour)
	sessionLastused := time.Now()
	userAgent := c.Request().Header.Get("User-Agent")
	ipAddress := c.RealIP()
	session := models.Session{}

	if err := h.Conn.Where("user_id = ?", user.ID).Assign(models.Session{
		UserID:     user.ID,
		Token:      sessionToken,
		LastUsedAt: &sessionLastused,
		ExpiresAt:  &sessionExp,
		UserAgent:  &userAgent,
		IPAddress:  &ipAddress,
	}).FirstOrCreate(&session).Error; err != nil {
		logger.Errorf("Failed to create session: %v", err)
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": h.Config.AppURL,
		"iat": time.Now().Unix(),
		"sub": user.Email,
		"aud": h.Config.AppURL,
		"jti": sessionToken,
		"sid": session.ID,
		"uid": user.ID,
		"exp": session.ExpiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.Config.JWTSecret))
	if err != nil {
		logger.Errorf("Failed to sign token: %v", err)
		return "", err
	}

	return tokenString, nil
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a new tutor, veterinarian or clinic account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body  SignupRequest  true  "Signup request payload"
// @Success      201 {object} AuthResponse 	 "Signup successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      409 {object} echo.HTTPError     "Duplicate user"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/signup [post]
func (h *Handler) Signup(c echo.Context) error {
	logger := c.Logger()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid signup request payload:", err)
		return echo.ErrBadRequest
	}

	if req.DisplayName == "" {
		logger.Error("Display name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "display_name field is required",
		}
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		logger.Error("Invalid role.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "role field must be one of: tutor, veterinarian, clinic",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid password: %v", err.Error()),
		}
	}

	userID, err := h.Users.Register(users.Registration{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        role,
		CRMV:        req.CRMV,
		ClinicID:    req.ClinicID,
	})
	if err != nil {
		logger.Errorf("Failed to register user: %v", err)
		return httpError(err)
	}

	user, err := h.Users.ByID(userID)
	if err != nil {
		logger.Errorf("Failed to load new user: %v", err)
		return echo.ErrInternalServerError
	}

	sessionToken, err := h.generateSessionToken(c, user)
	if err != nil {
		logger.Errorf("Failed to generate session token after signup: %v", err)
		return echo.ErrInternalServerError
	}

	go h.Mailer.Send(context.Background(), notifications.Message{
		To:       user.Email,
		ToName:   user.DisplayName,
		Subject:  "Welcome to PET DOR!",
		Template: "welcome",
		Variables: map[string]any{
			"name":     user.DisplayName,
			"app_link": h.Config.AppURL,
		},
	})

	logger.Infof("User signed up successfully")
	return c.JSON(http.StatusCreated, AuthResponse{
		SessionToken: sessionToken,
		Message:      "Signup successful",
	})
}

// Login godoc
// @Summary      Login a user
// @Description  Authenticates a user and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} AuthResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	user, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Error("Authentication failed.")
		return httpError(err)
	}

	sessionToken, err := h.generateSessionToken(c, user)
	if err != nil {
		logger.Errorf("Failed to generate session token after login: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, AuthResponse{
		SessionToken: sessionToken,
		Message:      "Login successful",
	})
}

// Logout godoc
// @Summary      Logout a user
// @Description  Logs out a user and invalidates the session.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204 "Logout successful"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	if err := h.Conn.Unscoped().Delete(&session).Error; err != nil {
		logger.Errorf("Failed to delete session: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User logged out successfully")
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword godoc
// @Summary      Request password reset
// @Description  Sends a password reset email to the user's registered email address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        forgotPasswordRequest  body  ForgotPasswordRequest  true  "Forgot password request"
// @Success      200 {object} GenericResponse "Password reset email sent if the account exists"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      429 {object} echo.HTTPError  "Too many requests"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/forgot-password [post]
func (h *Handler) ForgotPassword(c echo.Context) error {
	logger := c.Logger()

	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid forgot password request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	// The response is identical whether or not the account exists.
	anonymousOK := GenericResponse{
		Message: "If the email you entered is linked to an account, you'll " +
			"receive password reset instructions in your mail. Be sure to check your inbox and spam folder.",
	}

	if user, err := h.Users.ByEmail(req.Email); err == nil {
		recentReset := models.PasswordReset{}
		if err := h.Conn.Where("user_id = ? AND created_at > ?", user.ID, time.Now().Add(-5*time.Minute)).
			First(&recentReset).Error; err == nil {
			logger.Info("Recent password reset email already sent")
			return &echo.HTTPError{
				Code:    http.StatusTooManyRequests,
				Message: "Please wait 5 minutes before requesting another password reset email",
			}
		}
	}

	issued, err := h.Resets.Issue(req.Email)
	if err != nil {
		logger.Errorf("Failed to issue reset token: %v", err)
		return echo.ErrInternalServerError
	}
	if issued == nil {
		logger.Error("User not found for password reset.")
		return c.JSON(http.StatusOK, anonymousOK)
	}

	resetLink := h.Config.AppURL + "/reset-password?token=" + issued.Token
	go h.Mailer.Send(context.Background(), notifications.Message{
		To:       issued.User.Email,
		ToName:   issued.User.DisplayName,
		Subject:  "Reset Your PET DOR Password",
		Template: "password-reset",
		Variables: map[string]any{
			"name":             issued.User.DisplayName,
			"reset_link":       resetLink,
			"expiration_hours": fmt.Sprintf("%.0f", h.Config.ResetTokenTTL.Hours()),
		},
	})

	logger.Infof("Password reset email sent successfully.")
	return c.JSON(http.StatusOK, anonymousOK)
}

// ValidateResetToken godoc
// @Summary      Validate a password reset token
// @Description  Checks a reset token so the client can safely render the new-password form
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        validateResetTokenRequest  body  ValidateResetTokenRequest  true  "Token validation request"
// @Success      200 {object} GenericResponse "Token is valid"
// @Failure      400 {object} echo.HTTPError  "Bad request or invalid token"
// @Failure      410 {object} echo.HTTPError  "Token expired"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/validate-reset-token [post]
func (h *Handler) ValidateResetToken(c echo.Context) error {
	logger := c.Logger()

	var req ValidateResetTokenRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid token validation payload:", err)
		return echo.ErrBadRequest
	}

	if req.Token == "" {
		logger.Error("Password reset token is required")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "token field is required",
		}
	}

	if _, err := h.Resets.Validate(req.Token); err != nil {
		logger.Error("Reset token validation failed: ", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Token is valid"})
}

// ResetPassword godoc
// @Summary      Reset password
// @Description  Resets the user's password using the token sent via email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body  ResetPasswordRequest  true  "Password reset request"
// @Success      200 {object} GenericResponse "Password reset successfully"
// @Failure      400 {object} echo.HTTPError  "Bad request or invalid token"
// @Failure      410 {object} echo.HTTPError  "Token expired"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/reset-password [post]
func (h *Handler) ResetPassword(c echo.Context) error {
	logger := c.Logger()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid password reset request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Token == "" {
		logger.Error("Password reset token is required")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "token field is required",
		}
	}

	if req.NewPassword == "" {
		logger.Error("New password is required")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "new_password field is required",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("New password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid new password: " + err.Error(),
		}
	}

	if err := h.Resets.Consume(req.Token, req.NewPassword); err != nil {
		logger.Error("Failed to consume reset token: ", err)
		return httpError(err)
	}

	logger.Infof("Password reset successful")
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "Password reset successfully. Please log in with your new password.",
	})
}
