package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/filestorage"
	"github.com/rahulk/studyshare/internal/pkg/helpers"
	"github.com/rahulk/studyshare/internal/pkg/logger"
)

// ResourceStore is the resource persistence surface.
type ResourceStore interface {
	Create(ctx context.Context, res *models.Resource) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	List(ctx context.Context, filter *dto.ResourceFilterRequest, offset, limit int) ([]*models.Resource, int64, error)
	ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Resource, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	IncrementDownloads(ctx context.Context, id int64) error
	UpdateRatingStats(ctx context.Context, id int64, average float64, total int) error
	Facets(ctx context.Context) (*dto.FacetsResponse, error)
}

// ResourceService handles the resource catalog.
type ResourceService struct {
	resources   ResourceStore
	users       UserStore
	fileStorage filestorage.FileStorage
}

// NewResourceService creates a new ResourceService
func NewResourceService(resources ResourceStore, users UserStore, fileStorage filestorage.FileStorage) *ResourceService {
	return &ResourceService{
		resources:   resources,
		users:       users,
		fileStorage: fileStorage,
	}
}

// normalizeTags splits a comma-separated tag string, lowercases and trims
// each tag and drops empties and duplicates.
func normalizeTags(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Upload stores the file and creates the resource row. Only contributors and
// admins may upload. Past papers must carry a year.
func (s *ResourceService) Upload(ctx context.Context, uploaderID int64, req *dto.UploadResourceRequest, fileHeader *multipart.FileHeader) (*dto.ResourceResponse, error) {
	user, err := s.users.GetByID(ctx, uploaderID)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanUpload() {
		return nil, apperrors.NewForbiddenError("only contributors can upload resources")
	}

	resType := models.ResourceType(req.Type)
	if !resType.IsValid() {
		return nil, apperrors.NewValidationError("invalid resource type")
	}
	if resType == models.ResourcePYQ && req.Year == nil {
		return nil, apperrors.NewValidationError("year is required for past year questions")
	}
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("file is required")
	}

	fileURL, err := s.fileStorage.Save(fileHeader, "resources")
	if err != nil {
		return nil, apperrors.NewStoreError("failed to store resource file")
	}

	var description *string
	if d := strings.TrimSpace(req.Description); d != "" {
		description = &d
	}

	res := &models.Resource{
		Title:       strings.TrimSpace(req.Title),
		Description: description,
		Type:        resType,
		Subject:     strings.TrimSpace(req.Subject),
		Semester:    strings.TrimSpace(req.Semester),
		Year:        req.Year,
		Tags:        normalizeTags(req.Tags),
		FileURL:     fileURL,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		UploaderID:  uploaderID,
		ShowContact: req.ShowContact,
	}

	id, err := s.resources.Create(ctx, res)
	if err != nil {
		if delErr := s.fileStorage.Delete(fileURL); delErr != nil {
			logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to clean up orphaned file")
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Get returns a single resource.
func (s *ResourceService) Get(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewResourceResponse(res)
	return &resp, nil
}

// List returns resources matching the filter with pagination.
func (s *ResourceService) List(ctx context.Context, filter *dto.ResourceFilterRequest) ([]dto.ResourceResponse, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	resources, total, err := s.resources.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]dto.ResourceResponse, 0, len(resources))
	for _, res := range resources {
		responses = append(responses, dto.NewResourceResponse(res))
	}

	pagination := helpers.NewPaginationInfo(total, filter.Page, limit)
	return responses, &pagination, nil
}

// ListMine returns every resource the caller has uploaded.
func (s *ResourceService) ListMine(ctx context.Context, uploaderID int64) ([]dto.ResourceResponse, error) {
	resources, err := s.resources.ListByUploader(ctx, uploaderID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ResourceResponse, 0, len(resources))
	for _, res := range resources {
		responses = append(responses, dto.NewResourceResponse(res))
	}
	return responses, nil
}

// RecordDownload bumps the download counter and returns the file URL.
func (s *ResourceService) RecordDownload(ctx context.Context, id int64) (string, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.resources.IncrementDownloads(ctx, id); err != nil {
		return "", err
	}
	return res.FileURL, nil
}

// Delete removes a resource. Only the uploader or an admin may delete it.
// Ratings and comments go with it; the stored file is removed best effort.
func (s *ResourceService) Delete(ctx context.Context, callerID, resourceID int64) error {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return err
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if res.UploaderID != callerID && caller.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("only the uploader or an admin can delete a resource")
	}

	if err := s.resources.Delete(ctx, resourceID); err != nil {
		return err
	}

	if err := s.fileStorage.Delete(res.FileURL); err != nil {
		logger.Warn().Err(err).Str("fileURL", res.FileURL).Msg("Failed to delete resource file")
	}

	logger.Info().Int64("resourceID", resourceID).Int64("callerID", callerID).Msg("Resource removed")
	return nil
}

// Facets returns the distinct filter values present in the catalog.
func (s *ResourceService) Facets(ctx context.Context) (*dto.FacetsResponse, error) {
	return s.resources.Facets(ctx)
}
