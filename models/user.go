// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

var AllModels []any

type UserRole string

const (
	RoleTutor        UserRole = "tutor"
	RoleVeterinarian UserRole = "veterinarian"
	RoleClinic       UserRole = "clinic"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleTutor, RoleVeterinarian, RoleClinic:
		return true
	}
	return false
}

type User struct {
	ID          uint     `gorm:"primaryKey"`
	DisplayName string   `gorm:"size:255;not null"`
	Email       string   `gorm:"not null;uniqueIndex"`
	Password    string   `gorm:"not null"`
	Role        UserRole `gorm:"size:32;not null"`
	// CRMV is the professional registration number, veterinarians only.
	CRMV      *string `gorm:"size:64;default:null"`
	ClinicID  *uint
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func init() {
	AllModels = append(AllModels, &User{})
}
