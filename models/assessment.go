// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"encoding/json"
	"petdor-server/scoring"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment is one completed questionnaire submission. Rows are immutable
// once created; a new submission is a new Assessment.
type Assessment struct {
	ID  uint      `gorm:"primaryKey"`
	AID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	PetName string          `gorm:"size:255;not null"`
	Species scoring.Species `gorm:"size:16;not null"`
	// Answers holds the ordered answer sequence as a JSON array, one integer
	// per question.
	Answers  string  `gorm:"type:text;not null"`
	RawScore int     `gorm:"not null"`
	MaxScore int     `gorm:"not null"`
	Percent  float64 `gorm:"not null"`

	VetEmail  *string `gorm:"size:255;default:null"`
	Comment   *string `gorm:"type:text;default:null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	UserID    uint
	User      User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.AID == uuid.Nil {
		a.AID = uuid.New()
	}
	return
}

func (a *Assessment) AnswerValues() ([]int, error) {
	var values []int
	if err := json.Unmarshal([]byte(a.Answers), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (a *Assessment) SetAnswerValues(values []int) error {
	if values == nil {
		values = []int{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	a.Answers = string(raw)
	return nil
}

func init() {
	AllModels = append(AllModels, &Assessment{})
}
