// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"petdor-server/commons"
	"petdor-server/handlers"
	"petdor-server/models"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h *handlers.Handler) {
	commons.Logger.Debug("Registering v1 routes")
	auth := h.Auth
	api_v1 := e.Group("/v1")
	api_v1.POST("/auth/signup", h.Signup)
	api_v1.POST("/auth/login", h.Login)
	api_v1.POST("/auth/logout", h.Logout, auth.Verify())
	api_v1.POST("/auth/forgot-password", h.ForgotPassword)
	api_v1.POST("/auth/validate-reset-token", h.ValidateResetToken)
	api_v1.POST("/auth/reset-password", h.ResetPassword)
	api_v1.GET("/users/", h.GetUser, auth.Verify())
	api_v1.PUT("/users/password", h.ChangePassword, auth.Verify())
	api_v1.GET("/species", h.ListSpecies)
	api_v1.POST("/assessments", h.SubmitAssessment, auth.Verify(), auth.RequireRole(models.RoleTutor))
	api_v1.GET("/assessments", h.ListMyAssessments, auth.Verify(), auth.RequireRole(models.RoleTutor))
	api_v1.GET("/vet/assessments", h.VetAssessments, auth.Verify(), auth.RequireRole(models.RoleVeterinarian))
	api_v1.GET("/assessments/:assessment_id/report", h.DownloadReport, auth.Verify())
	api_v1.GET("/clinics", h.ListClinics)
	api_v1.POST("/clinics", h.CreateClinic, auth.Verify(), auth.RequireRole(models.RoleVeterinarian, models.RoleClinic))
	commons.Logger.Info("v1 routes registered successfully")
}
