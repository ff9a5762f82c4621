package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/filestorage"
	"github.com/rahulk/studyshare/internal/pkg/logger"
)

// UserService handles profile management and admin role changes.
type UserService struct {
	users       UserStore
	fileStorage filestorage.FileStorage
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, fileStorage filestorage.FileStorage) *UserService {
	return &UserService{
		users:       users,
		fileStorage: fileStorage,
	}
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	updates := make(map[string]interface{})
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, apperrors.NewValidationError("display name cannot be empty")
		}
		updates["display_name"] = name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.ShowContact != nil {
		updates["show_contact"] = *req.ShowContact
	}

	if len(updates) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

// UpdatePhoto stores a new profile photo and records its URL.
func (s *UserService) UpdatePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photoURL, err := s.fileStorage.Save(fileHeader, "profile_photos")
	if err != nil {
		return nil, apperrors.NewStoreError("failed to store profile photo")
	}

	if err := s.users.UpdatePhoto(ctx, userID, photoURL); err != nil {
		if delErr := s.fileStorage.Delete(photoURL); delErr != nil {
			logger.Warn().Err(delErr).Str("photoURL", photoURL).Msg("Failed to clean up orphaned photo")
		}
		return nil, err
	}

	// Remove the replaced photo after the new URL is committed.
	if user.PhotoURL != nil && *user.PhotoURL != "" {
		if err := s.fileStorage.Delete(*user.PhotoURL); err != nil {
			logger.Warn().Err(err).Str("photoURL", *user.PhotoURL).Msg("Failed to delete previous photo")
		}
	}

	return s.GetProfile(ctx, userID)
}

// SetRole changes a user's role. Only admins may call this, and an admin
// cannot demote themselves.
func (s *UserService) SetRole(ctx context.Context, callerID, targetID int64, role models.UserRole) (*dto.UserResponse, error) {
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("invalid role")
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("only admins can change roles")
	}
	if callerID == targetID && role != models.RoleAdmin {
		return nil, apperrors.NewValidationError("admins cannot demote themselves")
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("callerID", callerID).
		Int64("targetID", targetID).
		Str("role", string(role)).
		Msg("User role changed by admin")

	return s.GetProfile(ctx, targetID)
}
