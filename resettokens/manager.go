// SPDX-License-Identifier: GPL-3.0-only

// Package resettokens issues, validates and single-use-consumes password
// reset tokens.
package resettokens

import (
	"errors"
	"fmt"
	"petdor-server/commons"
	"petdor-server/crypto"
	"petdor-server/db"
	"petdor-server/models"
	"petdor-server/users"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("reset token not found")
	ErrTokenAlreadyUsed = errors.New("reset token already used")
	ErrTokenExpired     = errors.New("reset token expired")
)

type Manager struct {
	conn  *gorm.DB
	users *users.Store
	ttl   time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewManager(conn *gorm.DB, userStore *users.Store, ttl time.Duration) *Manager {
	return &Manager{conn: conn, users: userStore, ttl: ttl, now: time.Now}
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// Issue creates a fresh token for the account owning email. It returns
// (nil, nil) when no such account exists so callers cannot probe which
// emails are registered. Outstanding tokens for the same user are left
// untouched; several may be valid at once.
func (m *Manager) Issue(email string) (*IssuedToken, error) {
	user, err := m.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token, err := crypto.GenerateRandomString("prt_", 32, "hex")
	if err != nil {
		commons.Logger.Errorf("Failed to generate reset token: %v", err)
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}

	reset := models.PasswordReset{
		Token:     token,
		ExpiresAt: m.now().Add(m.ttl),
		UserID:    user.ID,
	}
	if err := m.conn.Create(&reset).Error; err != nil {
		commons.Logger.Errorf("Failed to persist reset token: %v", err)
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}

	return &IssuedToken{Token: token, ExpiresAt: reset.ExpiresAt, User: *user}, nil
}

// Validate checks a token without consuming it and returns the owning user
// ID. When multiple rows share a token value the most recently created one
// is authoritative.
func (m *Manager) Validate(token string) (uint, error) {
	reset, err := m.lookup(m.conn, token)
	if err != nil {
		return 0, err
	}
	if reset.IsUsed {
		return 0, ErrTokenAlreadyUsed
	}
	if m.now().After(reset.ExpiresAt) {
		return 0, ErrTokenExpired
	}
	return reset.UserID, nil
}

// Consume re-validates the token, marks it used and updates the owner's
// password through the credential store, all inside one transaction. The
// used flag flips via a compare-and-set so of two concurrent consumers
// exactly one succeeds and the other observes ErrTokenAlreadyUsed.
func (m *Manager) Consume(token, newPassword string) error {
	return m.conn.Transaction(func(tx *gorm.DB) error {
		reset, err := m.lookup(tx, token)
		if err != nil {
			return err
		}
		if reset.IsUsed {
			return ErrTokenAlreadyUsed
		}
		if m.now().After(reset.ExpiresAt) {
			return ErrTokenExpired
		}

		res := tx.Model(&models.PasswordReset{}).
			Where("id = ? AND is_used = ?", reset.ID, false).
			Update("is_used", true)
		if res.Error != nil {
			commons.Logger.Errorf("Failed to mark reset token as used: %v", res.Error)
			return fmt.Errorf("%w: %v", db.ErrUnavailable, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTokenAlreadyUsed
		}

		return m.users.WithConn(tx).SetPassword(reset.UserID, newPassword)
	})
}

func (m *Manager) lookup(conn *gorm.DB, token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := conn.Where("token = ?", token).Order("id DESC").First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		commons.Logger.Errorf("Failed to find reset token: %v", err)
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return &reset, nil
}
