package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/app/services"
	"github.com/rahulk/studyshare/internal/middleware"
)

// CommentController handles comment endpoints.
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Add posts a comment on a resource
// @Summary Comment on a resource
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body dto.AddCommentRequest true "Comment text"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.APIResponse "Empty comment"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id}/comments [post]
func (c *CommentController) Add(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resourceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Comment text is required").WithField("text")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	comment, err := c.commentService.Add(ctx.Request.Context(), userID, resourceID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// List returns a resource's comments
// @Summary List comments
// @Tags comments
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id}/comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	resourceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	comments, err := c.commentService.List(ctx.Request.Context(), resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// Delete removes a comment
// @Summary Delete a comment
// @Description The author or an admin removes a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204 "Comment deleted"
// @Failure 403 {object} dto.APIResponse "Not the author or an admin"
// @Failure 404 {object} dto.APIResponse "Comment not found"
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.commentService.Delete(ctx.Request.Context(), userID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
