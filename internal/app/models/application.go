package models

import (
	"time"
)

// ApplicationStatus is the review state of a contributor application.
//
// State machine: pending -> approved, pending -> rejected. Both are terminal.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsValid reports whether the status is one of the defined states.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// ContributorApplication maps the 'contributor_applications' table.
//
// At most one application per user may be pending or approved at a time; a
// partial unique index on user_id enforces this at the store level.
type ContributorApplication struct {
	ID               int64             `json:"id" db:"id"`
	UserID           int64             `json:"userId" db:"user_id"`
	ApplicantName    string            `json:"applicantName" db:"applicant_name"`   // display name snapshot at submission
	ApplicantEmail   string            `json:"applicantEmail" db:"applicant_email"` // email snapshot at submission
	FullName         string            `json:"fullName" db:"full_name"`
	CollegeRollNo    string            `json:"collegeRollNo" db:"college_roll_no"`
	UniversityRollNo string            `json:"universityRollNo" db:"university_roll_no"`
	Batch            string            `json:"batch" db:"batch" example:"2022-2026"`
	Semester         *string           `json:"semester,omitempty" db:"semester"`
	Status           ApplicationStatus `json:"status" db:"status" example:"pending"`
	AppliedAt        time.Time         `json:"appliedAt" db:"applied_at"`
	ReviewedAt       *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`
	ReviewedBy       *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`
}
