package dto

import (
	"time"

	"github.com/rahulk/studyshare/internal/app/models"
)

// AddCommentRequest is the payload for posting a comment.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID          int64     `json:"id"`
	ResourceID  int64     `json:"resourceId"`
	UserID      int64     `json:"userId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhoto *string   `json:"authorPhoto,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewCommentResponse converts a comment model into its response DTO.
func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		ResourceID:  c.ResourceID,
		UserID:      c.UserID,
		AuthorName:  c.AuthorName,
		AuthorPhoto: c.AuthorPhoto,
		Text:        c.Text,
		CreatedAt:   c.CreatedAt,
	}
}
