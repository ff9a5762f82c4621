package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/email"
	"github.com/rahulk/studyshare/internal/pkg/helpers"
	"github.com/rahulk/studyshare/internal/pkg/logger"
)

// ApplicationStore is the contributor application persistence surface.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.ContributorApplication) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContributorApplication, error)
	GetActiveByUser(ctx context.Context, userID int64) (*models.ContributorApplication, error)
	GetLatestByUser(ctx context.Context, userID int64) (*models.ContributorApplication, error)
	List(ctx context.Context, status *models.ApplicationStatus, offset, limit int) ([]*models.ContributorApplication, int64, error)
	Approve(ctx context.Context, applicationID, reviewerID int64) error
	Reject(ctx context.Context, applicationID, reviewerID int64) error
}

// ApplicationService handles the contributor application workflow.
type ApplicationService struct {
	applications ApplicationStore
	users        UserStore
	notifier     email.Notifier
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(applications ApplicationStore, users UserStore, notifier email.Notifier) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		users:        users,
		notifier:     notifier,
	}
}

func validateApplicationRequest(req *dto.SubmitApplicationRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return apperrors.NewValidationError("full name is required")
	}
	if strings.TrimSpace(req.CollegeRollNo) == "" {
		return apperrors.NewValidationError("college roll number is required")
	}
	if strings.TrimSpace(req.UniversityRollNo) == "" {
		return apperrors.NewValidationError("university roll number is required")
	}
	if strings.TrimSpace(req.Batch) == "" {
		return apperrors.NewValidationError("batch is required")
	}
	return nil
}

// Submit files a contributor application for the caller. A user with a
// pending or approved application, or who can already upload, gets a
// conflict.
func (s *ApplicationService) Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := validateApplicationRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role.CanUpload() {
		return nil, apperrors.NewConflictError("user is already a contributor")
	}

	existing, err := s.applications.GetActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrApplicationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrApplicationExists
	}

	app := &models.ContributorApplication{
		UserID:           userID,
		ApplicantName:    user.DisplayName,
		ApplicantEmail:   user.Email,
		FullName:         strings.TrimSpace(req.FullName),
		CollegeRollNo:    strings.TrimSpace(req.CollegeRollNo),
		UniversityRollNo: strings.TrimSpace(req.UniversityRollNo),
		Batch:            strings.TrimSpace(req.Batch),
		Semester:         req.Semester,
		Status:           models.ApplicationPending,
	}

	id, err := s.applications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	created, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewApplicationResponse(created)
	return &resp, nil
}

// GetOwn returns the caller's most recent application.
func (s *ApplicationService) GetOwn(ctx context.Context, userID int64) (*dto.ApplicationResponse, error) {
	app, err := s.applications.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// List returns applications for admin review, optionally filtered by status.
func (s *ApplicationService) List(ctx context.Context, callerID int64, status *models.ApplicationStatus, page, pageSize int) ([]dto.ApplicationResponse, *dto.PaginationInfo, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, nil, err
	}
	if status != nil && !status.IsValid() {
		return nil, nil, apperrors.NewValidationError("invalid application status")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	apps, total, err := s.applications.List(ctx, status, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.NewApplicationResponse(app))
	}

	pagination := helpers.NewPaginationInfo(total, page, limit)
	return responses, &pagination, nil
}

// Approve grants a pending application and promotes the applicant to
// contributor. The decision notification is best effort.
func (s *ApplicationService) Approve(ctx context.Context, callerID, applicationID int64) (*dto.ApplicationResponse, error) {
	return s.decide(ctx, callerID, applicationID, models.ApplicationApproved)
}

// Reject declines a pending application.
func (s *ApplicationService) Reject(ctx context.Context, callerID, applicationID int64) (*dto.ApplicationResponse, error) {
	return s.decide(ctx, callerID, applicationID, models.ApplicationRejected)
}

func (s *ApplicationService) decide(ctx context.Context, callerID, applicationID int64, decision models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	var err error
	if decision == models.ApplicationApproved {
		err = s.applications.Approve(ctx, applicationID, callerID)
	} else {
		err = s.applications.Reject(ctx, applicationID, callerID)
	}
	if err != nil {
		return nil, err
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendApplicationDecision(app.ApplicantEmail, app.ApplicantName, decision); err != nil {
			logger.Warn().Err(err).
				Int64("applicationID", applicationID).
				Msg("Failed to send application decision email")
		}
	}

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

func (s *ApplicationService) requireAdmin(ctx context.Context, callerID int64) error {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("admin access required")
	}
	return nil
}
