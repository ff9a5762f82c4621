package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/logger"
)

const resourceColumns = `r.id, r.title, r.description, r.type, r.subject, r.semester, r.year, r.tags,
	r.file_url, r.file_name, r.file_size, r.uploader_id, u.display_name, u.email, u.phone, r.show_contact,
	r.download_count, r.average_rating, r.total_ratings, r.created_at, r.updated_at`

// ResourceRepository handles resource database operations.
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var res models.Resource
	err := row.Scan(
		&res.ID, &res.Title, &res.Description, &res.Type, &res.Subject,
		&res.Semester, &res.Year, &res.Tags,
		&res.FileURL, &res.FileName, &res.FileSize,
		&res.UploaderID, &res.UploaderName, &res.UploaderEmail, &res.UploaderPhone, &res.ShowContact,
		&res.DownloadCount, &res.AverageRating, &res.TotalRatings,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new resource and returns its id.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) (int64, error) {
	sql, args, err := r.sb.Insert("resources").
		Columns("title", "description", "type", "subject", "semester", "year", "tags",
			"file_url", "file_name", "file_size", "uploader_id", "show_contact").
		Values(res.Title, res.Description, res.Type, res.Subject, res.Semester, res.Year, res.Tags,
			res.FileURL, res.FileName, res.FileSize, res.UploaderID, res.ShowContact).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create resource query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", res.Title).Msg("Error inserting resource")
		return 0, fmt.Errorf("error inserting resource: %w", err)
	}

	logger.Info().Int64("resourceID", id).Int64("uploaderID", res.UploaderID).Msg("Resource created")
	return id, nil
}

// GetByID fetches a resource by id with uploader details joined in.
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	sql, args, err := r.sb.Select(resourceColumns).
		From("resources r").
		Join("users u ON u.id = r.uploader_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	res, err := scanResource(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error querying resource ID=%d: %w", id, err)
	}
	return res, nil
}

func applyResourceFilters(query squirrel.SelectBuilder, filter *dto.ResourceFilterRequest) squirrel.SelectBuilder {
	if filter.Type != nil {
		query = query.Where(squirrel.Eq{"r.type": *filter.Type})
	}
	if filter.Subject != nil {
		query = query.Where(squirrel.Eq{"r.subject": *filter.Subject})
	}
	if filter.Semester != nil {
		query = query.Where(squirrel.Eq{"r.semester": *filter.Semester})
	}
	if filter.Year != nil {
		query = query.Where(squirrel.Eq{"r.year": *filter.Year})
	}
	if len(filter.Tags) > 0 {
		query = query.Where("r.tags && ?", filter.Tags)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"r.title": pattern},
			squirrel.ILike{"r.description": pattern},
			squirrel.ILike{"r.subject": pattern},
		})
	}
	return query
}

// List returns resources matching the filter, newest first, with the total count.
func (r *ResourceRepository) List(ctx context.Context, filter *dto.ResourceFilterRequest, offset, limit int) ([]*models.Resource, int64, error) {
	countQuery := applyResourceFilters(r.sb.Select("COUNT(*)").From("resources r"), filter)
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count resources query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting resources: %w", err)
	}

	listQuery := applyResourceFilters(
		r.sb.Select(resourceColumns).
			From("resources r").
			Join("users u ON u.id = r.uploader_id"),
		filter,
	)
	listSQL, listArgs, err := listQuery.
		OrderBy("r.created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list resources query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing resources: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating resource rows: %w", err)
	}

	return resources, total, nil
}

// ListByUploader returns every resource owned by a user, newest first.
func (r *ResourceRepository) ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Resource, error) {
	sql, args, err := r.sb.Select(resourceColumns).
		From("resources r").
		Join("users u ON u.id = r.uploader_id").
		Where(squirrel.Eq{"r.uploader_id": uploaderID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list by uploader query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing resources for uploader ID=%d: %w", uploaderID, err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}

	return resources, nil
}

// Update applies a partial update to a resource.
func (r *ResourceRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	sql, args, err := r.sb.Update("resources").
		SetMap(updates).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error updating resource")
		return fmt.Errorf("error updating resource ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Delete removes a resource. Ratings and comments cascade at the schema level.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error deleting resource")
		return fmt.Errorf("error deleting resource ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	logger.Info().Int64("resourceID", id).Msg("Resource deleted")
	return nil
}

// IncrementDownloads bumps the download counter by one.
func (r *ResourceRepository) IncrementDownloads(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE resources SET download_count = download_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error incrementing downloads for resource ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// UpdateRatingStats stores the derived rating aggregate on the resource row.
func (r *ResourceRepository) UpdateRatingStats(ctx context.Context, id int64, average float64, total int) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE resources SET average_rating = $1, total_ratings = $2, updated_at = $3 WHERE id = $4",
		average, total, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating rating stats for resource ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Facets returns the distinct subjects, semesters and tags present in the catalog.
func (r *ResourceRepository) Facets(ctx context.Context) (*dto.FacetsResponse, error) {
	facets := &dto.FacetsResponse{
		Subjects:  []string{},
		Semesters: []string{},
		Tags:      []string{},
	}

	if err := r.queryStrings(ctx,
		"SELECT DISTINCT subject FROM resources ORDER BY subject", &facets.Subjects); err != nil {
		return nil, err
	}
	if err := r.queryStrings(ctx,
		"SELECT DISTINCT semester FROM resources ORDER BY semester", &facets.Semesters); err != nil {
		return nil, err
	}
	if err := r.queryStrings(ctx,
		"SELECT DISTINCT unnest(tags) AS tag FROM resources ORDER BY tag", &facets.Tags); err != nil {
		return nil, err
	}

	return facets, nil
}

func (r *ResourceRepository) queryStrings(ctx context.Context, sql string, dest *[]string) error {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return fmt.Errorf("error querying facet values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return fmt.Errorf("error scanning facet value: %w", err)
		}
		*dest = append(*dest, v)
	}
	return rows.Err()
}
