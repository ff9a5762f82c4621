package dto

import (
	"time"

	"github.com/rahulk/studyshare/internal/app/models"
)

// SubmitApplicationRequest is the payload for a contributor application.
type SubmitApplicationRequest struct {
	FullName         string  `json:"fullName" binding:"required,min=2,max=100" example:"Rahul Kumar"`
	CollegeRollNo    string  `json:"collegeRollNo" binding:"required,max=50" example:"CSE/22/074"`
	UniversityRollNo string  `json:"universityRollNo" binding:"required,max=50" example:"2201023456"`
	Batch            string  `json:"batch" binding:"required,max=20" example:"2022-2026"`
	Semester         *string `json:"semester,omitempty" binding:"omitempty,max=20" example:"4"`
}

// ApplicationResponse is the public view of a contributor application.
type ApplicationResponse struct {
	ID               int64      `json:"id" example:"12"`
	UserID           int64      `json:"userId" example:"3"`
	ApplicantName    string     `json:"applicantName"`
	ApplicantEmail   string     `json:"applicantEmail"`
	FullName         string     `json:"fullName"`
	CollegeRollNo    string     `json:"collegeRollNo"`
	UniversityRollNo string     `json:"universityRollNo"`
	Batch            string     `json:"batch"`
	Semester         *string    `json:"semester,omitempty"`
	Status           string     `json:"status" example:"pending" enums:"pending,approved,rejected"`
	AppliedAt        time.Time  `json:"appliedAt"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy       *int64     `json:"reviewedBy,omitempty"`
}

// NewApplicationResponse converts an application model into its response DTO.
func NewApplicationResponse(app *models.ContributorApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:               app.ID,
		UserID:           app.UserID,
		ApplicantName:    app.ApplicantName,
		ApplicantEmail:   app.ApplicantEmail,
		FullName:         app.FullName,
		CollegeRollNo:    app.CollegeRollNo,
		UniversityRollNo: app.UniversityRollNo,
		Batch:            app.Batch,
		Semester:         app.Semester,
		Status:           string(app.Status),
		AppliedAt:        app.AppliedAt,
		ReviewedAt:       app.ReviewedAt,
		ReviewedBy:       app.ReviewedBy,
	}
}
