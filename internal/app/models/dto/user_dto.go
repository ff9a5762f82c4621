package dto

import (
	"time"

	"github.com/rahulk/studyshare/internal/app/models"
)

// UserResponse is the public view of a user profile.
type UserResponse struct {
	ID          int64     `json:"id" example:"1"`
	Email       string    `json:"email" example:"student@college.ac.in"`
	DisplayName string    `json:"displayName" example:"Rahul Kumar"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Role        string    `json:"role" example:"viewer" enums:"viewer,contributor,admin"`
	ShowContact bool      `json:"showContact"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewUserResponse converts a user model into its response DTO.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Bio:         user.Bio,
		Phone:       user.Phone,
		Role:        string(user.Role),
		ShowContact: user.ShowContact,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// UpdateProfileRequest is the payload for profile edits. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty" binding:"omitempty,min=2,max=100"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	ShowContact *bool   `json:"showContact,omitempty"`
}

// UpdateRoleRequest is the admin payload for direct role assignment.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" example:"contributor" enums:"viewer,contributor,admin"`
}
