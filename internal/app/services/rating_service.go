package services

import (
	"context"
	"errors"
	"math"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
)

// RatingStore is the rating persistence surface.
type RatingStore interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByResourceAndUser(ctx context.Context, resourceID, userID int64) (*models.Rating, error)
	ListByResource(ctx context.Context, resourceID int64) ([]*models.Rating, error)
}

// RatingService handles rating submission and aggregate maintenance.
type RatingService struct {
	ratings   RatingStore
	resources ResourceStore
}

// NewRatingService creates a new RatingService
func NewRatingService(ratings RatingStore, resources ResourceStore) *RatingService {
	return &RatingService{
		ratings:   ratings,
		resources: resources,
	}
}

// Submit records or replaces the caller's rating for a resource and
// recomputes the stored aggregate from all current ratings.
func (s *RatingService) Submit(ctx context.Context, userID, resourceID int64, value int) (*dto.RatingSummaryResponse, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ResourceID: resourceID,
		UserID:     userID,
		Rating:     value,
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return s.recompute(ctx, resourceID)
}

// GetUserRating returns the caller's rating for a resource, nil if absent.
func (s *RatingService) GetUserRating(ctx context.Context, userID, resourceID int64) (*dto.UserRatingResponse, error) {
	rating, err := s.ratings.GetByResourceAndUser(ctx, resourceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRatingNotFound) {
			return &dto.UserRatingResponse{Rating: nil}, nil
		}
		return nil, err
	}
	return &dto.UserRatingResponse{Rating: &rating.Rating}, nil
}

// recompute derives the average from every rating on the resource and writes
// it back. An empty rating set yields a zero average.
func (s *RatingService) recompute(ctx context.Context, resourceID int64) (*dto.RatingSummaryResponse, error) {
	ratings, err := s.ratings.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	var average float64
	total := len(ratings)
	if total > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		average = float64(sum) / float64(total)
		average = math.Round(average*100) / 100
	}

	if err := s.resources.UpdateRatingStats(ctx, resourceID, average, total); err != nil {
		return nil, err
	}

	return &dto.RatingSummaryResponse{
		AverageRating: average,
		TotalRatings:  total,
	}, nil
}
