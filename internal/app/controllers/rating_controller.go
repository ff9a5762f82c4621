package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/app/services"
	"github.com/rahulk/studyshare/internal/middleware"
)

// RatingController handles rating endpoints.
type RatingController struct {
	ratingService *services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService *services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// Submit records or replaces the caller's rating
// @Summary Rate a resource
// @Description Records a 1-5 rating; resubmitting replaces the previous value. Returns the recomputed aggregate.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body dto.SubmitRatingRequest true "Rating value"
// @Success 200 {object} dto.APIResponse{data=dto.RatingSummaryResponse} "Updated aggregate"
// @Failure 400 {object} dto.APIResponse "Rating out of range"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id}/ratings [put]
func (c *RatingController) Submit(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resourceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rating is required").WithField("rating")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	summary, err := c.ratingService.Submit(ctx.Request.Context(), userID, resourceID, req.Rating)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// GetOwn returns the caller's rating for a resource
// @Summary Get own rating
// @Description Returns the caller's rating for the resource, null if not rated
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserRatingResponse} "Rating"
// @Router /resources/{id}/ratings/me [get]
func (c *RatingController) GetOwn(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resourceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rating, err := c.ratingService.GetUserRating(ctx.Request.Context(), userID, resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rating))
}
