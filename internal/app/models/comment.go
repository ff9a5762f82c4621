package models

import (
	"time"
)

// Comment maps the 'comments' table. AuthorName and AuthorPhoto come from a
// join against users when rows are read.
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	ResourceID  int64     `json:"resourceId" db:"resource_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	AuthorName  string    `json:"authorName" db:"author_name"`
	AuthorPhoto *string   `json:"authorPhoto,omitempty" db:"author_photo"`
	Text        string    `json:"text" db:"text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
