// SPDX-License-Identifier: GPL-3.0-only

package handlers

type SignupRequest struct {
	// User's display name
	DisplayName string `json:"display_name" example:"Maria Silva"`
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
	// Account role: tutor, veterinarian or clinic
	Role string `json:"role" example:"tutor"`
	// Professional registration number, veterinarians only
	CRMV *string `json:"crmv,omitempty" example:"CRMV-SP 12345"`
	// Existing clinic to associate with, veterinarians and clinics
	ClinicID *uint `json:"clinic_id,omitempty"`
}

type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

type AuthResponse struct {
	// Authentication session token, used as a Bearer token on subsequent
	// requests.
	SessionToken string `json:"session_token,omitempty" example:"sample_session_token"`
	// Message indicating successful operation
	Message string `json:"message" example:"Operation successful"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

type ValidateResetTokenRequest struct {
	Token string `json:"token" example:"prt_0123abcd"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" example:"prt_0123abcd"`
	NewPassword string `json:"new_password" example:"MyNewSecretPassword@123"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type GenericResponse struct {
	Message string `json:"message" example:"Operation successful"`
}

type GetUserResponse struct {
	DisplayName string  `json:"display_name" example:"Maria Silva"`
	Email       string  `json:"email" example:"user@example.com"`
	Role        string  `json:"role" example:"tutor"`
	CRMV        *string `json:"crmv,omitempty"`
	ClinicID    *uint   `json:"clinic_id,omitempty"`
	CreatedAt   string  `json:"created_at" example:"2025-03-14T10:30:00Z"`
}

type SubmitAssessmentRequest struct {
	// Name of the assessed pet
	PetName string `json:"pet_name" example:"Rex"`
	// Species key: dog or cat
	Species string `json:"species" example:"dog"`
	// One answer per question, each in [0, scale max]
	Answers []int `json:"answers"`
	// Veterinarian to copy on the report, optional
	VetEmail *string `json:"vet_email,omitempty" example:"vet@example.com"`
	// Free-text tutor comment, optional
	Comment *string `json:"comment,omitempty"`
}

type DeliveryOutcome struct {
	Recipient string `json:"recipient" example:"vet@example.com"`
	Delivered bool   `json:"delivered"`
	Reason    string `json:"reason,omitempty" example:"RECIPIENT_REJECTED"`
}

type SubmitAssessmentResponse struct {
	// Public assessment identifier, used to download the report
	AssessmentID string `json:"assessment_id" example:"9f6b3c9e-8c7a-4f2e-b9d4-1a2b3c4d5e6f"`
	Percent      float64 `json:"percent" example:"43.8"`
	Band         string  `json:"band" example:"moderate"`
	// Per-recipient delivery outcomes; the report stays downloadable even
	// when every send failed.
	Deliveries []DeliveryOutcome `json:"deliveries"`
	Message    string            `json:"message" example:"Assessment recorded"`
}

type AssessmentDetails struct {
	AssessmentID string  `json:"assessment_id"`
	PetName      string  `json:"pet_name" example:"Rex"`
	Species      string  `json:"species" example:"dog"`
	Percent      float64 `json:"percent" example:"43.8"`
	Band         string  `json:"band" example:"moderate"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"created_at" example:"2025-03-14T10:30:00Z"`
}

type AssessmentListResponse struct {
	Data    []AssessmentDetails `json:"data"`
	Message string              `json:"message" example:"Assessments retrieved successfully"`
}

type SpeciesDetails struct {
	Species   string   `json:"species" example:"dog"`
	ScaleMax  int      `json:"scale_max" example:"7"`
	Questions []string `json:"questions"`
}

type SpeciesListResponse struct {
	Data []SpeciesDetails `json:"data"`
}

type CreateClinicRequest struct {
	Name    string  `json:"name" example:"Vital Pet Care"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

type ClinicDetails struct {
	ClinicID uint    `json:"clinic_id"`
	Name     string  `json:"name" example:"Vital Pet Care"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type ClinicListResponse struct {
	Data    []ClinicDetails `json:"data"`
	Message string          `json:"message" example:"Clinics retrieved successfully"`
}
