// SPDX-License-Identifier: GPL-3.0-only

// Package assessments persists completed questionnaire submissions and the
// per-recipient delivery outcomes of their reports.
package assessments

import (
	"errors"
	"fmt"
	"petdor-server/commons"
	"petdor-server/db"
	"petdor-server/models"
	"petdor-server/scoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("assessment not found")

type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

type Submission struct {
	UserID   uint
	PetName  string
	Species  scoring.Species
	Answers  []int
	VetEmail *string
	Comment  *string
}

// Create scores the submission and persists it as an immutable row. Percent
// is always derived from the answers here, never accepted from the caller.
func (s *Store) Create(sub Submission) (*models.Assessment, error) {
	scaleMax := sub.Species.ScaleMax()
	percent, err := scoring.Compute(sub.Answers, scaleMax)
	if err != nil {
		return nil, err
	}

	rawScore := 0
	for _, v := range sub.Answers {
		rawScore += v
	}

	assessment := models.Assessment{
		PetName:  sub.PetName,
		Species:  sub.Species,
		RawScore: rawScore,
		MaxScore: len(sub.Answers) * scaleMax,
		Percent:  percent,
		VetEmail: sub.VetEmail,
		Comment:  sub.Comment,
		UserID:   sub.UserID,
	}
	if err := assessment.SetAnswerValues(sub.Answers); err != nil {
		return nil, err
	}

	if err := s.conn.Create(&assessment).Error; err != nil {
		commons.Logger.Errorf("Failed to persist assessment: %v", err)
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return &assessment, nil
}

func (s *Store) ByPublicID(aid uuid.UUID) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.conn.Where("a_id = ?", aid).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return &assessment, nil
}

// ByTutor lists a tutor's submission history, newest first.
func (s *Store) ByTutor(userID uint) ([]models.Assessment, error) {
	var list []models.Assessment
	if err := s.conn.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return list, nil
}

// ByVetEmail lists assessments whose tutors addressed them to the given
// veterinarian email, newest first.
func (s *Store) ByVetEmail(email string) ([]models.Assessment, error) {
	var list []models.Assessment
	if err := s.conn.Where("vet_email = ?", email).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return list, nil
}

// RecordDeliveries stores one row per recipient outcome for an assessment.
func (s *Store) RecordDeliveries(assessmentID uint, records []models.ReportDelivery) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		records[i].AssessmentID = assessmentID
	}
	if err := s.conn.Create(&records).Error; err != nil {
		commons.Logger.Errorf("Failed to record report deliveries: %v", err)
		return fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) DeliveriesFor(assessmentID uint) ([]models.ReportDelivery, error) {
	var list []models.ReportDelivery
	if err := s.conn.Where("assessment_id = ?", assessmentID).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", db.ErrUnavailable, err)
	}
	return list, nil
}
