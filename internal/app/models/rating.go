package models

import (
	"time"
)

// Rating bounds accepted by the platform.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating maps the 'ratings' table. At most one row exists per
// (resource_id, user_id) pair; resubmission overwrites the value in place and
// keeps the original CreatedAt.
type Rating struct {
	ID         int64     `json:"id" db:"id"`
	ResourceID int64     `json:"resourceId" db:"resource_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Rating     int       `json:"rating" db:"rating" example:"4"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
