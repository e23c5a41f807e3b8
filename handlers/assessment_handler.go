// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"petdor-server/assessments"
	"petdor-server/delivery"
	"petdor-server/models"
	"petdor-server/report"
	"petdor-server/scoring"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SubmitAssessment godoc
// @Summary      Submit a completed questionnaire
// @Description  Scores the answers, stores the assessment, compiles the PDF
// @Description  report and dispatches it to the recipients. The assessment is
// @Description  recorded even when every delivery fails.
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        submitAssessmentRequest  body  SubmitAssessmentRequest  true  "Assessment submission"
// @Success      201 {object} SubmitAssessmentResponse "Assessment recorded"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/assessments [post]
func (h *Handler) SubmitAssessment(c echo.Context) error {
	logger := c.Logger()

	user, err := h.Auth.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to resolve authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	var req SubmitAssessmentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid assessment submission payload:", err)
		return echo.ErrBadRequest
	}

	if req.PetName == "" {
		logger.Error("Pet name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "pet_name field is required",
		}
	}

	species := scoring.Species(req.Species)
	if !species.Valid() {
		logger.Error("Invalid species.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "species field must be one of: dog, cat",
		}
	}

	if len(req.Answers) != len(species.Questions()) {
		logger.Error("Answer count does not match the questionnaire.")
		return &echo.HTTPError{
			Code: http.StatusBadRequest,
			Message: fmt.Sprintf("answers must contain exactly %d values for species %s",
				len(species.Questions()), species),
		}
	}

	assessment, err := h.Assessments.Create(assessments.Submission{
		UserID:   user.ID,
		PetName:  req.PetName,
		Species:  species,
		Answers:  req.Answers,
		VetEmail: req.VetEmail,
		Comment:  req.Comment,
	})
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidAnswer) {
			logger.Error("Answers out of range.")
			return &echo.HTTPError{
				Code: http.StatusBadRequest,
				Message: fmt.Sprintf("each answer must be between 0 and %d",
					species.ScaleMax()),
			}
		}
		logger.Errorf("Failed to store assessment: %v", err)
		return httpError(err)
	}

	outcomes := h.dispatchReport(c, user, assessment, req.Answers)

	band := scoring.Classify(assessment.Percent)
	resp := SubmitAssessmentResponse{
		AssessmentID: assessment.AID.String(),
		Percent:      assessment.Percent,
		Band:         string(band),
		Deliveries:   make([]DeliveryOutcome, 0, len(outcomes)),
		Message:      "Assessment recorded",
	}
	for _, o := range outcomes {
		resp.Deliveries = append(resp.Deliveries, DeliveryOutcome{
			Recipient: o.Recipient,
			Delivered: o.Delivered,
			Reason:    o.Reason,
		})
	}

	logger.Infof("Assessment recorded successfully")
	return c.JSON(http.StatusCreated, resp)
}

// dispatchReport compiles the PDF and fans it out. Compile or delivery
// failures never undo the stored assessment; they only show up as failed
// outcomes.
func (h *Handler) dispatchReport(c echo.Context, user *models.User, assessment *models.Assessment, answers []int) []delivery.Outcome {
	logger := c.Logger()

	comment := ""
	if assessment.Comment != nil {
		comment = *assessment.Comment
	}
	pdf, err := report.Compile(report.Input{
		TutorName:   user.DisplayName,
		PetName:     assessment.PetName,
		Species:     assessment.Species,
		Percent:     assessment.Percent,
		Summary:     report.SummaryLines(assessment.Species, answers),
		Comment:     comment,
		GeneratedAt: assessment.CreatedAt,
	})
	if err != nil {
		logger.Errorf("Failed to compile report PDF: %v", err)
		return nil
	}

	recipients := []string{user.Email}
	if assessment.VetEmail != nil {
		recipients = append(recipients, *assessment.VetEmail)
	}

	outcomes := h.Dispatcher.Dispatch(c.Request().Context(), delivery.Report{
		TutorName: user.DisplayName,
		PetName:   assessment.PetName,
		Species:   assessment.Species,
		Percent:   assessment.Percent,
		PDF:       pdf,
	}, recipients)

	records := make([]models.ReportDelivery, 0, len(outcomes))
	for _, o := range outcomes {
		record := models.ReportDelivery{
			Recipient: o.Recipient,
			Status:    models.DeliveryDelivered,
		}
		if !o.Delivered {
			record.Status = models.DeliveryFailed
			reason := o.Reason
			record.Reason = &reason
		}
		records = append(records, record)
	}
	if err := h.Assessments.RecordDeliveries(assessment.ID, records); err != nil {
		logger.Errorf("Failed to record delivery outcomes: %v", err)
	}

	return outcomes
}

// ListMyAssessments godoc
// @Summary      List the authenticated tutor's assessments
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} AssessmentListResponse "Assessments retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/assessments [get]
func (h *Handler) ListMyAssessments(c echo.Context) error {
	logger := c.Logger()

	user, err := h.Auth.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to resolve authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	list, err := h.Assessments.ByTutor(user.ID)
	if err != nil {
		logger.Errorf("Failed to list assessments: %v", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, AssessmentListResponse{
		Data:    assessmentDetails(list),
		Message: "Assessments retrieved successfully",
	})
}

// VetAssessments godoc
// @Summary      List assessments addressed to the authenticated veterinarian
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} AssessmentListResponse "Assessments retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Forbidden"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/vet/assessments [get]
func (h *Handler) VetAssessments(c echo.Context) error {
	logger := c.Logger()

	user, err := h.Auth.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to resolve authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	list, err := h.Assessments.ByVetEmail(user.Email)
	if err != nil {
		logger.Errorf("Failed to list addressed assessments: %v", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, AssessmentListResponse{
		Data:    assessmentDetails(list),
		Message: "Assessments retrieved successfully",
	})
}

// DownloadReport godoc
// @Summary      Download an assessment's PDF report
// @Description  Recompiles the report from the stored assessment. Available to
// @Description  the submitting tutor and to the veterinarian it was addressed
// @Description  to, regardless of earlier delivery outcomes.
// @Tags         assessments
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        assessment_id  path  string  true  "Public assessment identifier"
// @Success      200 {file} file "The report PDF"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Forbidden"
// @Failure      404 {object} echo.HTTPError "Assessment not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/assessments/{assessment_id}/report [get]
func (h *Handler) DownloadReport(c echo.Context) error {
	logger := c.Logger()

	user, err := h.Auth.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to resolve authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	aid, err := uuid.Parse(c.Param("assessment_id"))
	if err != nil {
		logger.Error("Invalid assessment identifier.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "assessment_id must be a valid identifier",
		}
	}

	assessment, err := h.Assessments.ByPublicID(aid)
	if err != nil {
		if errors.Is(err, assessments.ErrNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Assessment not found",
			}
		}
		logger.Errorf("Failed to load assessment: %v", err)
		return httpError(err)
	}

	addressedVet := assessment.VetEmail != nil && *assessment.VetEmail == user.Email
	if assessment.UserID != user.ID && !addressedVet {
		logger.Error("User is not allowed to access this assessment.")
		return &echo.HTTPError{
			Code:    http.StatusForbidden,
			Message: "You do not have access to this assessment",
		}
	}

	answers, err := assessment.AnswerValues()
	if err != nil {
		logger.Errorf("Failed to decode stored answers: %v", err)
		return echo.ErrInternalServerError
	}

	tutor, err := h.Users.ByID(assessment.UserID)
	if err != nil {
		logger.Errorf("Failed to load assessment tutor: %v", err)
		return echo.ErrInternalServerError
	}

	comment := ""
	if assessment.Comment != nil {
		comment = *assessment.Comment
	}
	pdf, err := report.Compile(report.Input{
		TutorName:   tutor.DisplayName,
		PetName:     assessment.PetName,
		Species:     assessment.Species,
		Percent:     assessment.Percent,
		Summary:     report.SummaryLines(assessment.Species, answers),
		Comment:     comment,
		GeneratedAt: assessment.CreatedAt,
	})
	if err != nil {
		logger.Errorf("Failed to compile report PDF: %v", err)
		return echo.ErrInternalServerError
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, report.Filename(assessment.PetName)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ListSpecies godoc
// @Summary      List the supported species questionnaires
// @Tags         assessments
// @Produce      json
// @Success      200 {object} SpeciesListResponse "Species retrieved"
// @Router       /v1/species [get]
func (h *Handler) ListSpecies(c echo.Context) error {
	resp := SpeciesListResponse{}
	for _, species := range scoring.AllSpecies() {
		resp.Data = append(resp.Data, SpeciesDetails{
			Species:   string(species),
			ScaleMax:  species.ScaleMax(),
			Questions: species.Questions(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func assessmentDetails(list []models.Assessment) []AssessmentDetails {
	details := make([]AssessmentDetails, 0, len(list))
	for _, a := range list {
		details = append(details, AssessmentDetails{
			AssessmentID: a.AID.String(),
			PetName:      a.PetName,
			Species:      string(a.Species),
			Percent:      a.Percent,
			Band:         string(scoring.Classify(a.Percent)),
			Comment:      a.Comment,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		})
	}
	return details
}
