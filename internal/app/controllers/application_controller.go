package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/app/services"
	"github.com/rahulk/studyshare/internal/middleware"
	"github.com/rahulk/studyshare/internal/pkg/helpers"
)

// ApplicationController handles contributor application endpoints.
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// Submit files a contributor application
// @Summary Apply to become a contributor
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 409 {object} dto.APIResponse "Active application already exists"
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	app, err := c.applicationService.Submit(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(app))
}

// GetOwn returns the caller's latest application
// @Summary Get own application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application"
// @Failure 404 {object} dto.APIResponse "No application found"
// @Router /applications/me [get]
func (c *ApplicationController) GetOwn(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	app, err := c.applicationService.GetOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}

// List returns applications for review
// @Summary List contributor applications
// @Description Admin-only review queue, optionally filtered by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20)"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse,pagination=dto.PaginationInfo} "Applications"
// @Failure 403 {object} dto.APIResponse "Admin access required"
// @Router /admin/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	callerID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var status *models.ApplicationStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ApplicationStatus(raw)
		status = &s
	}

	page, size := helpers.ParsePaginationParams(ctx)

	apps, pagination, err := c.applicationService.List(ctx.Request.Context(), callerID, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(apps, *pagination))
}

// Approve grants a pending application
// @Summary Approve an application
// @Description Admin-only; marks the application approved and promotes the applicant to contributor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Approved application"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Failure 409 {object} dto.APIResponse "Application already decided"
// @Router /admin/applications/{id}/approve [post]
func (c *ApplicationController) Approve(ctx *gin.Context) {
	callerID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.Approve(ctx.Request.Context(), callerID, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}

// Reject declines a pending application
// @Summary Reject an application
// @Description Admin-only; marks the application rejected
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Rejected application"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Failure 409 {object} dto.APIResponse "Application already decided"
// @Router /admin/applications/{id}/reject [post]
func (c *ApplicationController) Reject(ctx *gin.Context) {
	callerID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applicationService.Reject(ctx.Request.Context(), callerID, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}
