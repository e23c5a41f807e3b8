// SPDX-License-Identifier: GPL-3.0-only

// Package users is the credential store. It owns User rows and is the only
// component allowed to write them.
package users

import (
	"errors"
	"fmt"
	"petdor-server/commons"
	"petdor-server/crypto"
	"petdor-server/db"
	"petdor-server/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// email from a wrong password.
	ErrInvalidCredentials = errors.New("credentials are incorrect")
)

type Store struct {
	conn   *gorm.DB
	crypto *crypto.Crypto
}

func NewStore(conn *gorm.DB, c *crypto.Crypto) *Store {
	return &Store{conn: conn, crypto: c}
}

// WithConn returns a copy of the store bound to the given connection,
// typically a transaction.
func (s *Store) WithConn(conn *gorm.DB) *Store {
	clone := *s
	clone.conn = conn
	return &clone
}

type Registration struct {
	DisplayName string
	Email       string
	Password    string
	Role        models.UserRole
	CRMV        *string
	ClinicID    *uint
}

// Register creates a user with a salted argon2id hash of the password.
// Email matching is exact on the stored string, no normalization.
func (s *Store) Register(reg Registration) (uint, error) {
	hash, err := s.crypto.HashPassword(reg.Password)
	if err != nil {
		commons.Logger.Errorf("Failed to hash password: %v", err)
		return 0, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}

	user := models.User{
		DisplayName: reg.DisplayName,
		Email:       reg.Email,
		Password:    hash,
		Role:        reg.Role,
		CRMV:        reg.CRMV,
		ClinicID:    reg.ClinicID,
	}

	err = s.conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", reg.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", db.ErrUnavailable, err)
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Create(&user).Error; err != nil {
			// The unique index backs up the pre-check under concurrency.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("%w: %v", db.ErrUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Authenticate returns the user iff the email exists and the password hash
// matches. Any mismatch yields ErrInvalidCredentials.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		commons.Logger.Errorf("Failed to find user: %v", err)
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	if err := s.crypto.VerifyPassword(password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// SetPassword replaces the stored hash unconditionally.
func (s *Store) SetPassword(userID uint, newPassword string) error {
	hash, err := s.crypto.HashPassword(newPassword)
	if err != nil {
		commons.Logger.Errorf("Failed to hash password: %v", err)
		return fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	res := s.conn.Model(&models.User{}).Where("id = ?", userID).Update("password", hash)
	if res.Error != nil {
		commons.Logger.Errorf("Failed to update password: %v", res.Error)
		return fmt.Errorf("%w: %v", db.ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) ByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.conn.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return &user, nil
}

func (s *Store) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return &user, nil
}
