// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"petdor-server/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Auth verifies JWT-wrapped database sessions and gates routes by role.
// It is constructed once in main and handed to route registration, so no
// package-level connection state exists.
type Auth struct {
	Conn      *gorm.DB
	JWTSecret string
}

func NewAuth(conn *gorm.DB, jwtSecret string) *Auth {
	return &Auth{Conn: conn, JWTSecret: jwtSecret}
}

func (a *Auth) Verify() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			authHeader := c.Request().Header.Get("Authorization")
			after, ok := cutBearer(authHeader)
			if !ok {
				logger.Error("Authorization header missing or invalid.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Bearer token is required",
				}
			}

			token, err := jwt.Parse(after, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(a.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Error("Authentication failed.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired authentication token",
				}
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Authentication failed.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired authentication token",
				}
			}

			sessionID := claims["sid"]
			userID := claims["uid"]
			tokenID := claims["jti"]

			session := models.Session{}
			err = a.Conn.Where("id = ? AND user_id = ? AND token = ?", sessionID, userID, tokenID).First(&session).Error
			if err != nil || session.ExpiresAt == nil || session.ExpiresAt.Before(time.Now()) {
				logger.Error("Authentication failed.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired authentication token",
				}
			}

			now := time.Now()
			session.LastUsedAt = &now
			if err := a.Conn.Save(&session).Error; err != nil {
				logger.Error("Failed to update session LastUsedAt: ", err)
			}

			c.Set("session", session)
			return next(c)
		}
	}
}

// RequireRole is the single authorization gate for protected operations.
// Routes declare the roles they admit at registration; handlers never
// re-check roles themselves.
func (a *Auth) RequireRole(roles ...models.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := a.AuthenticatedUser(c)
			if err != nil {
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired authentication token",
				}
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			c.Logger().Errorf("User role %q is not allowed here", user.Role)
			return &echo.HTTPError{
				Code:    http.StatusForbidden,
				Message: "Your account type is not allowed to perform this operation",
			}
		}
	}
}

// AuthenticatedUser resolves the session stored by Verify to its user. The
// user is cached on the context for the rest of the request.
func (a *Auth) AuthenticatedUser(c echo.Context) (*models.User, error) {
	if user, ok := c.Get("user").(*models.User); ok {
		return user, nil
	}
	session, ok := c.Get("session").(models.Session)
	if !ok {
		return nil, errors.New("no authenticated user found")
	}
	var user models.User
	if err := a.Conn.Where("id = ?", session.UserID).First(&user).Error; err != nil {
		return nil, err
	}
	c.Set("user", &user)
	return &user, nil
}

func cutBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}
