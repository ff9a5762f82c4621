package models

import (
	"time"
)

// ResourceType categorizes an uploaded academic document.
type ResourceType string

const (
	ResourceNotes    ResourceType = "notes"
	ResourcePYQ      ResourceType = "pyq" // previous-year questions
	ResourceSyllabus ResourceType = "syllabus"
)

// IsValid reports whether the type is one of the defined types.
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceNotes, ResourcePYQ, ResourceSyllabus:
		return true
	}
	return false
}

// Resource maps the 'resources' table.
//
// AverageRating and TotalRatings are derived from the ratings table and are
// rewritten whenever the rating set for the resource changes. AverageRating is
// 0 when TotalRatings is 0.
type Resource struct {
	ID            int64        `json:"id" db:"id"`
	Title         string       `json:"title" db:"title" example:"DBMS Unit 3 Notes"`
	Description   *string      `json:"description,omitempty" db:"description"`
	Type          ResourceType `json:"type" db:"type" example:"notes"`
	Subject       string       `json:"subject" db:"subject" example:"Database Management Systems"`
	Semester      string       `json:"semester" db:"semester" example:"4"`
	Year          *int         `json:"year,omitempty" db:"year"` // exam year, meaningful for pyq
	Tags          []string     `json:"tags" db:"tags"`
	FileURL       string       `json:"fileUrl" db:"file_url"`
	FileName      string       `json:"fileName" db:"file_name"`
	FileSize      int64        `json:"fileSize" db:"file_size"`
	UploaderID    int64        `json:"uploaderId" db:"uploader_id"`
	UploaderName  string       `json:"uploaderName"`            // joined from users
	UploaderEmail *string      `json:"uploaderEmail,omitempty"` // joined from users
	UploaderPhone *string      `json:"uploaderPhone,omitempty"` // joined from users
	ShowContact   bool         `json:"showContact" db:"show_contact"`
	DownloadCount int64        `json:"downloadCount" db:"download_count"`
	AverageRating float64      `json:"averageRating" db:"average_rating"`
	TotalRatings  int          `json:"totalRatings" db:"total_ratings"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}
