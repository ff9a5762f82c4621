package services

import (
	"context"
	"strings"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
)

// CommentStore is the comment persistence surface.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByResource(ctx context.Context, resourceID int64) ([]*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// CommentService handles resource comments.
type CommentService struct {
	comments  CommentStore
	resources ResourceStore
	users     UserStore
}

// NewCommentService creates a new CommentService
func NewCommentService(comments CommentStore, resources ResourceStore, users UserStore) *CommentService {
	return &CommentService{
		comments:  comments,
		resources: resources,
		users:     users,
	}
}

// Add posts a comment on a resource.
func (s *CommentService) Add(ctx context.Context, userID, resourceID int64, text string) (*dto.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text cannot be empty")
	}

	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ResourceID: resourceID,
		UserID:     userID,
		Text:       text,
	}

	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	created, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(created)
	return &resp, nil
}

// List returns a resource's comments, newest first.
func (s *CommentService) List(ctx context.Context, resourceID int64) ([]dto.CommentResponse, error) {
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, dto.NewCommentResponse(c))
	}
	return responses, nil
}

// Delete removes a comment. The author or an admin may delete it.
func (s *CommentService) Delete(ctx context.Context, callerID, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if comment.UserID != callerID && caller.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("only the author or an admin can delete a comment")
	}

	return s.comments.Delete(ctx, commentID)
}
