package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/logger"
)

// RatingRepository handles rating database operations.
type RatingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts the user's rating for a resource or replaces the value of an
// existing one. The original created_at is kept on replace.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	sql := `INSERT INTO ratings (resource_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (resource_id, user_id) DO UPDATE SET rating = EXCLUDED.rating`

	_, err := r.db.Exec(ctx, sql, rating.ResourceID, rating.UserID, rating.Rating)
	if err != nil {
		logger.Error().Err(err).
			Int64("resourceID", rating.ResourceID).
			Int64("userID", rating.UserID).
			Msg("Error upserting rating")
		return fmt.Errorf("error upserting rating: %w", err)
	}
	return nil
}

// GetByResourceAndUser returns the user's rating for a resource.
func (r *RatingRepository) GetByResourceAndUser(ctx context.Context, resourceID, userID int64) (*models.Rating, error) {
	sql, args, err := r.sb.Select("id", "resource_id", "user_id", "rating", "created_at").
		From("ratings").
		Where(squirrel.Eq{"resource_id": resourceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get rating query: %w", err)
	}

	var rating models.Rating
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rating.ID, &rating.ResourceID, &rating.UserID, &rating.Rating, &rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, fmt.Errorf("error querying rating: %w", err)
	}
	return &rating, nil
}

// ListByResource returns every rating for a resource.
func (r *RatingRepository) ListByResource(ctx context.Context, resourceID int64) ([]*models.Rating, error) {
	sql, args, err := r.sb.Select("id", "resource_id", "user_id", "rating", "created_at").
		From("ratings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list ratings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing ratings for resource ID=%d: %w", resourceID, err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(&rating.ID, &rating.ResourceID, &rating.UserID, &rating.Rating, &rating.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating rows: %w", err)
	}

	return ratings, nil
}
