// SPDX-License-Identifier: GPL-3.0-only

package assessments

import (
	"errors"
	"fmt"
	"petdor-server/crypto"
	"petdor-server/models"
	"petdor-server/scoring"
	"petdor-server/users"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testStore(t *testing.T) (*Store, uint) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	userStore := users.NewStore(conn, crypto.NewCrypto())
	userID, err := userStore.Register(users.Registration{
		DisplayName: "Tutor",
		Email:       "tutor@example.com",
		Password:    "Sup3r$ecret",
		Role:        models.RoleTutor,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return NewStore(conn), userID
}

func TestCreateDerivesScore(t *testing.T) {
	store, userID := testStore(t)

	vet := "vet@example.com"
	assessment, err := store.Create(Submission{
		UserID:   userID,
		PetName:  "Rex",
		Species:  scoring.SpeciesDog,
		Answers:  []int{3, 4, 2, 5, 1, 0, 6, 7, 3, 2, 4, 5, 1, 0, 3},
		VetEmail: &vet,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if assessment.AID == uuid.Nil {
		t.Error("Assessment should get a public ID on create")
	}
	if assessment.RawScore != 46 {
		t.Errorf("RawScore = %d, want 46", assessment.RawScore)
	}
	if assessment.MaxScore != 105 {
		t.Errorf("MaxScore = %d, want 105", assessment.MaxScore)
	}
	if assessment.Percent != 43.8 {
		t.Errorf("Percent = %v, want 43.8", assessment.Percent)
	}

	loaded, err := store.ByPublicID(assessment.AID)
	if err != nil {
		t.Fatalf("ByPublicID failed: %v", err)
	}
	answers, err := loaded.AnswerValues()
	if err != nil {
		t.Fatalf("AnswerValues failed: %v", err)
	}
	if len(answers) != 15 || answers[7] != 7 {
		t.Errorf("Answers did not round-trip: %v", answers)
	}
}

func TestCreateRejectsInvalidAnswers(t *testing.T) {
	store, userID := testStore(t)

	_, err := store.Create(Submission{
		UserID:  userID,
		PetName: "Mimi",
		Species: scoring.SpeciesCat,
		Answers: []int{0, 5, 0, 0, 0, 0, 0, 0, 0},
	})
	if !errors.Is(err, scoring.ErrInvalidAnswer) {
		t.Fatalf("Out-of-scale answer should fail with ErrInvalidAnswer, got %v", err)
	}
}

func TestQueries(t *testing.T) {
	store, userID := testStore(t)

	vet := "vet@example.com"
	for _, pet := range []string{"Rex", "Bolt"} {
		if _, err := store.Create(Submission{
			UserID:   userID,
			PetName:  pet,
			Species:  scoring.SpeciesDog,
			Answers:  make([]int, 15),
			VetEmail: &vet,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(Submission{
		UserID:  userID,
		PetName: "Mimi",
		Species: scoring.SpeciesCat,
		Answers: make([]int, 9),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := store.ByTutor(userID)
	if err != nil {
		t.Fatalf("ByTutor failed: %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("ByTutor returned %d rows, want 3", len(mine))
	}

	forVet, err := store.ByVetEmail(vet)
	if err != nil {
		t.Fatalf("ByVetEmail failed: %v", err)
	}
	if len(forVet) != 2 {
		t.Errorf("ByVetEmail returned %d rows, want 2", len(forVet))
	}

	if _, err := store.ByPublicID(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unknown public ID should fail with ErrNotFound, got %v", err)
	}
}

func TestRecordDeliveries(t *testing.T) {
	store, userID := testStore(t)

	assessment, err := store.Create(Submission{
		UserID:  userID,
		PetName: "Rex",
		Species: scoring.SpeciesDog,
		Answers: make([]int, 15),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reason := "recipient rejected"
	records := []models.ReportDelivery{
		{Recipient: "relatorio@petdor.app", Status: models.DeliveryDelivered},
		{Recipient: "bad@example.com", Status: models.DeliveryFailed, Reason: &reason},
	}
	if err := store.RecordDeliveries(assessment.ID, records); err != nil {
		t.Fatalf("RecordDeliveries failed: %v", err)
	}

	got, err := store.DeliveriesFor(assessment.ID)
	if err != nil {
		t.Fatalf("DeliveriesFor failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("DeliveriesFor returned %d rows, want 2", len(got))
	}
	if got[0].Status != models.DeliveryDelivered || got[1].Status != models.DeliveryFailed {
		t.Errorf("Unexpected delivery statuses: %v, %v", got[0].Status, got[1].Status)
	}
}
