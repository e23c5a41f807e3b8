// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"petdor-server/models"

	"github.com/labstack/echo/v4"
)

// ListClinics godoc
// @Summary      List registered clinics
// @Tags         clinics
// @Produce      json
// @Success      200 {object} ClinicListResponse "Clinics retrieved"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/clinics [get]
func (h *Handler) ListClinics(c echo.Context) error {
	logger := c.Logger()

	var clinics []models.Clinic
	if err := h.Conn.Order("name").Find(&clinics).Error; err != nil {
		logger.Errorf("Failed to list clinics: %v", err)
		return echo.ErrInternalServerError
	}

	resp := ClinicListResponse{
		Data:    make([]ClinicDetails, 0, len(clinics)),
		Message: "Clinics retrieved successfully",
	}
	for _, clinic := range clinics {
		resp.Data = append(resp.Data, ClinicDetails{
			ClinicID: clinic.ID,
			Name:     clinic.Name,
			Email:    clinic.Email,
			Address:  clinic.Address,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateClinic godoc
// @Summary      Register a clinic
// @Tags         clinics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createClinicRequest  body  CreateClinicRequest  true  "Clinic registration"
// @Success      201 {object} ClinicDetails  "Clinic created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Forbidden"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/clinics [post]
func (h *Handler) CreateClinic(c echo.Context) error {
	logger := c.Logger()

	var req CreateClinicRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid clinic request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name == "" {
		logger.Error("Clinic name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	clinic := models.Clinic{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := h.Conn.Create(&clinic).Error; err != nil {
		logger.Errorf("Failed to create clinic: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Clinic created successfully")
	return c.JSON(http.StatusCreated, ClinicDetails{
		ClinicID: clinic.ID,
		Name:     clinic.Name,
		Email:    clinic.Email,
		Address:  clinic.Address,
	})
}
