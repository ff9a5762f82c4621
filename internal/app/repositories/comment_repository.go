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

const commentColumns = "c.id, c.resource_id, c.user_id, u.display_name, u.photo_url, c.text, c.created_at"

// CommentRepository handles comment database operations.
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.ResourceID, &c.UserID, &c.AuthorName, &c.AuthorPhoto, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment and returns its id.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("resource_id", "user_id", "text").
		Values(comment.ResourceID, comment.UserID, comment.Text).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("resourceID", comment.ResourceID).Msg("Error inserting comment")
		return 0, fmt.Errorf("error inserting comment: %w", err)
	}

	return id, nil
}

// GetByID fetches a comment by id with author details joined in.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := r.sb.Select(commentColumns).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	comment, err := scanComment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error querying comment ID=%d: %w", id, err)
	}
	return comment, nil
}

// ListByResource returns a resource's comments, newest first.
func (r *CommentRepository) ListByResource(ctx context.Context, resourceID int64) ([]*models.Comment, error) {
	sql, args, err := r.sb.Select(commentColumns).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.resource_id": resourceID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing comments for resource ID=%d: %w", resourceID, err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error deleting comment")
		return fmt.Errorf("error deleting comment ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
