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
	"github.com/rahulk/studyshare/internal/db"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/dberrors"
	"github.com/rahulk/studyshare/internal/pkg/logger"
)

const applicationColumns = "id, user_id, applicant_name, applicant_email, full_name, college_roll_no, university_roll_no, batch, semester, status, applied_at, reviewed_at, reviewed_by"

// ApplicationRepository handles contributor application database operations.
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanApplication(row pgx.Row) (*models.ContributorApplication, error) {
	var app models.ContributorApplication
	err := row.Scan(
		&app.ID, &app.UserID, &app.ApplicantName, &app.ApplicantEmail,
		&app.FullName, &app.CollegeRollNo, &app.UniversityRollNo,
		&app.Batch, &app.Semester, &app.Status,
		&app.AppliedAt, &app.ReviewedAt, &app.ReviewedBy,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new pending application and returns its id. A unique
// partial index on (user_id) over pending/approved rows rejects duplicates
// even under concurrent submissions.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.ContributorApplication) (int64, error) {
	sql, args, err := r.sb.Insert("contributor_applications").
		Columns("user_id", "applicant_name", "applicant_email", "full_name",
			"college_roll_no", "university_roll_no", "batch", "semester", "status").
		Values(app.UserID, app.ApplicantName, app.ApplicantEmail, app.FullName,
			app.CollegeRollNo, app.UniversityRollNo, app.Batch, app.Semester, models.ApplicationPending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrApplicationExists
		}
		logger.Error().Err(err).Int64("userID", app.UserID).Msg("Error inserting contributor application")
		return 0, fmt.Errorf("error inserting application: %w", err)
	}

	logger.Info().Int64("applicationID", id).Int64("userID", app.UserID).Msg("Contributor application created")
	return id, nil
}

// GetByID fetches an application by id.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.ContributorApplication, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("contributor_applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error querying application ID=%d: %w", id, err)
	}
	return app, nil
}

// GetActiveByUser returns the user's pending or approved application, if any.
func (r *ApplicationRepository) GetActiveByUser(ctx context.Context, userID int64) (*models.ContributorApplication, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("contributor_applications").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"status": []models.ApplicationStatus{models.ApplicationPending, models.ApplicationApproved}}).
		OrderBy("applied_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error querying active application for user ID=%d: %w", userID, err)
	}
	return app, nil
}

// GetLatestByUser returns the user's most recent application regardless of status.
func (r *ApplicationRepository) GetLatestByUser(ctx context.Context, userID int64) (*models.ContributorApplication, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("contributor_applications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("applied_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get latest application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error querying latest application for user ID=%d: %w", userID, err)
	}
	return app, nil
}

// List returns applications, optionally filtered by status, newest first.
func (r *ApplicationRepository) List(ctx context.Context, status *models.ApplicationStatus, offset, limit int) ([]*models.ContributorApplication, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("contributor_applications")
	listQuery := r.sb.Select(applicationColumns).From("contributor_applications")

	if status != nil {
		countQuery = countQuery.Where(squirrel.Eq{"status": *status})
		listQuery = listQuery.Where(squirrel.Eq{"status": *status})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	listSQL, listArgs, err := listQuery.
		OrderBy("applied_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.ContributorApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, total, nil
}

// Approve marks a pending application approved and promotes the applicant to
// contributor in the same transaction. Returns ErrConflict if the application
// is no longer pending.
func (r *ApplicationRepository) Approve(ctx context.Context, applicationID, reviewerID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var userID int64
		var status models.ApplicationStatus
		err := tx.QueryRow(ctx,
			"SELECT user_id, status FROM contributor_applications WHERE id = $1 FOR UPDATE",
			applicationID).Scan(&userID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrApplicationNotFound
			}
			return fmt.Errorf("error locking application ID=%d: %w", applicationID, err)
		}
		if status != models.ApplicationPending {
			return apperrors.NewConflictError(fmt.Sprintf("application is already %s", status))
		}

		now := time.Now()
		_, err = tx.Exec(ctx,
			"UPDATE contributor_applications SET status = $1, reviewed_at = $2, reviewed_by = $3 WHERE id = $4",
			models.ApplicationApproved, now, reviewerID, applicationID)
		if err != nil {
			return fmt.Errorf("error approving application ID=%d: %w", applicationID, err)
		}

		cmdTag, err := tx.Exec(ctx,
			"UPDATE users SET role = $1, updated_at = $2 WHERE id = $3",
			models.RoleContributor, now, userID)
		if err != nil {
			return fmt.Errorf("error promoting user ID=%d: %w", userID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		logger.Info().
			Int64("applicationID", applicationID).
			Int64("userID", userID).
			Int64("reviewerID", reviewerID).
			Msg("Contributor application approved")
		return nil
	})
}

// Reject marks a pending application rejected. Returns ErrConflict if the
// application is no longer pending.
func (r *ApplicationRepository) Reject(ctx context.Context, applicationID, reviewerID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.ApplicationStatus
		err := tx.QueryRow(ctx,
			"SELECT status FROM contributor_applications WHERE id = $1 FOR UPDATE",
			applicationID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrApplicationNotFound
			}
			return fmt.Errorf("error locking application ID=%d: %w", applicationID, err)
		}
		if status != models.ApplicationPending {
			return apperrors.NewConflictError(fmt.Sprintf("application is already %s", status))
		}

		_, err = tx.Exec(ctx,
			"UPDATE contributor_applications SET status = $1, reviewed_at = $2, reviewed_by = $3 WHERE id = $4",
			models.ApplicationRejected, time.Now(), reviewerID, applicationID)
		if err != nil {
			return fmt.Errorf("error rejecting application ID=%d: %w", applicationID, err)
		}

		logger.Info().
			Int64("applicationID", applicationID).
			Int64("reviewerID", reviewerID).
			Msg("Contributor application rejected")
		return nil
	})
}
