package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/app/services"
	"github.com/rahulk/studyshare/internal/middleware"
	"github.com/rahulk/studyshare/internal/pkg/helpers"
)

// ResourceController handles resource catalog endpoints.
type ResourceController struct {
	resourceService *services.ResourceService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService *services.ResourceService) *ResourceController {
	return &ResourceController{resourceService: resourceService}
}

// Upload creates a new resource
// @Summary Upload a resource
// @Description Contributors and admins upload a document with its metadata
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param type formData string true "Resource type (notes, pyq, syllabus)"
// @Param subject formData string true "Subject"
// @Param semester formData string true "Semester"
// @Param year formData int false "Year (required for pyq)"
// @Param tags formData string false "Comma-separated tags"
// @Param showContact formData bool false "Expose uploader contact details"
// @Success 201 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 403 {object} dto.APIResponse "Contributor role required"
// @Router /resources [post]
func (c *ResourceController) Upload(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UploadResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	resource, err := c.resourceService.Upload(ctx.Request.Context(), userID, &req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

func parseResourceFilter(ctx *gin.Context) *dto.ResourceFilterRequest {
	filter := &dto.ResourceFilterRequest{}

	if v := ctx.Query("type"); v != "" {
		filter.Type = &v
	}
	if v := ctx.Query("subject"); v != "" {
		filter.Subject = &v
	}
	if v := ctx.Query("semester"); v != "" {
		filter.Semester = &v
	}
	if v := ctx.Query("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.Year = &year
		}
	}
	if v := ctx.Query("tags"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	filter.Page, filter.PageSize = helpers.ParsePaginationParams(ctx)
	return filter
}

// List returns resources matching the query
// @Summary Browse resources
// @Description Lists resources with optional type, subject, semester, year, tag and text filters
// @Tags resources
// @Produce json
// @Param type query string false "Filter by type (notes, pyq, syllabus)"
// @Param subject query string false "Filter by subject"
// @Param semester query string false "Filter by semester"
// @Param year query int false "Filter by year"
// @Param tags query string false "Comma-separated tags, any match"
// @Param search query string false "Text search over title, description and subject"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20)"
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse,pagination=dto.PaginationInfo} "Resources"
// @Router /resources [get]
func (c *ResourceController) List(ctx *gin.Context) {
	filter := parseResourceFilter(ctx)

	resources, pagination, err := c.resourceService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(resources, *pagination))
}

// Get returns a single resource
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resource, err := c.resourceService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// ListMine returns the caller's uploads
// @Summary List own uploads
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse} "Resources"
// @Router /resources/mine [get]
func (c *ResourceController) ListMine(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	resources, err := c.resourceService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// Download records a download and redirects to the file
// @Summary Download a resource file
// @Description Increments the download counter and redirects to the stored file
// @Tags resources
// @Param id path int true "Resource ID"
// @Success 302 "Redirect to file"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id}/download [get]
func (c *ResourceController) Download(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileURL, err := c.resourceService.RecordDownload(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, fileURL)
}

// Delete removes a resource
// @Summary Delete a resource
// @Description The uploader or an admin removes a resource and its file
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 204 "Resource deleted"
// @Failure 403 {object} dto.APIResponse "Not the uploader or an admin"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.resourceService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Facets returns distinct filter values
// @Summary List catalog facets
// @Description Returns the distinct subjects, semesters and tags in the catalog
// @Tags resources
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FacetsResponse} "Facets"
// @Router /resources/facets [get]
func (c *ResourceController) Facets(ctx *gin.Context) {
	facets, err := c.resourceService.Facets(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(facets))
}
