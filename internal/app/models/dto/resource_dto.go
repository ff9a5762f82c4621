package dto

import (
	"time"

	"github.com/rahulk/studyshare/internal/app/models"
)

// UploadResourceRequest is the multipart form payload for a resource upload.
// The file itself is handled separately by the controller. Tags arrive as a
// comma-separated string.
type UploadResourceRequest struct {
	Title       string `form:"title" binding:"required,min=2,max=200"`
	Description string `form:"description" binding:"omitempty,max=2000"`
	Type        string `form:"type" binding:"required" example:"notes" enums:"notes,pyq,syllabus"`
	Subject     string `form:"subject" binding:"required,max=100"`
	Semester    string `form:"semester" binding:"required,max=20"`
	Year        *int   `form:"year" binding:"omitempty,min=1990,max=2100"`
	Tags        string `form:"tags" binding:"omitempty,max=500" example:"dbms,normalization"`
	ShowContact bool   `form:"showContact"`
}

// ResourceFilterRequest captures list query parameters.
type ResourceFilterRequest struct {
	Type     *string
	Subject  *string
	Semester *string
	Year     *int
	Tags     []string // matches resources whose tag set overlaps
	Search   *string  // substring match over title/description/subject
	Page     int
	PageSize int
}

// ResourceResponse is the public view of a resource. Uploader contact fields
// are omitted unless the uploader opted in.
type ResourceResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Type          string    `json:"type" enums:"notes,pyq,syllabus"`
	Subject       string    `json:"subject"`
	Semester      string    `json:"semester"`
	Year          *int      `json:"year,omitempty"`
	Tags          []string  `json:"tags"`
	FileURL       string    `json:"fileUrl"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	UploaderID    int64     `json:"uploaderId"`
	UploaderName  string    `json:"uploaderName"`
	UploaderEmail *string   `json:"uploaderEmail,omitempty"`
	UploaderPhone *string   `json:"uploaderPhone,omitempty"`
	DownloadCount int64     `json:"downloadCount"`
	AverageRating float64   `json:"averageRating" example:"4.2"`
	TotalRatings  int       `json:"totalRatings" example:"17"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewResourceResponse converts a resource model into its response DTO,
// honoring the uploader's contact-visibility flag.
func NewResourceResponse(r *models.Resource) ResourceResponse {
	resp := ResourceResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Type:          string(r.Type),
		Subject:       r.Subject,
		Semester:      r.Semester,
		Year:          r.Year,
		Tags:          r.Tags,
		FileURL:       r.FileURL,
		FileName:      r.FileName,
		FileSize:      r.FileSize,
		UploaderID:    r.UploaderID,
		UploaderName:  r.UploaderName,
		DownloadCount: r.DownloadCount,
		AverageRating: r.AverageRating,
		TotalRatings:  r.TotalRatings,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Tags == nil {
		resp.Tags = []string{}
	}
	if r.ShowContact {
		resp.UploaderEmail = r.UploaderEmail
		resp.UploaderPhone = r.UploaderPhone
	}
	return resp
}

// FacetsResponse lists the distinct filter values present in the catalog.
type FacetsResponse struct {
	Subjects  []string `json:"subjects"`
	Semesters []string `json:"semesters"`
	Tags      []string `json:"tags"`
}
