// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

// ReportDelivery records the outcome of one report send attempt to one
// recipient. A dispatch to N recipients produces N rows.
type ReportDelivery struct {
	ID           uint           `gorm:"primaryKey"`
	Recipient    string         `gorm:"size:255;not null"`
	Status       DeliveryStatus `gorm:"size:16;not null"`
	Reason       *string        `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	AssessmentID uint
	Assessment   Assessment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &ReportDelivery{})
}
