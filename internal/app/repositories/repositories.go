package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	Users        *UserRepository
	Tokens       *TokenRepository
	Applications *ApplicationRepository
	Resources    *ResourceRepository
	Ratings      *RatingRepository
	Comments     *CommentRepository
}

// NewRepositories constructs all repositories over a shared connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Tokens:       NewTokenRepository(db),
		Applications: NewApplicationRepository(db),
		Resources:    NewResourceRepository(db),
		Ratings:      NewRatingRepository(db),
		Comments:     NewCommentRepository(db),
	}
}
