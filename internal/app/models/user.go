package models

import (
	"time"
)

// UserRole defines the role of a user within the platform.
type UserRole string

const (
	// RoleViewer is the default role: browse, download, rate, comment.
	RoleViewer UserRole = "viewer"
	// RoleContributor may additionally upload and delete their own resources.
	RoleContributor UserRole = "contributor"
	// RoleAdmin reviews contributor applications and moderates content.
	RoleAdmin UserRole = "admin"
)

// IsValid reports whether the role is one of the defined roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleViewer, RoleContributor, RoleAdmin:
		return true
	}
	return false
}

// CanUpload reports whether the role is allowed to upload resources.
func (r UserRole) CanUpload() bool {
	return r == RoleContributor || r == RoleAdmin
}

// User maps the 'users' table.
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Email       string    `json:"email" db:"email" example:"student@college.ac.in"`
	Password    string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	DisplayName string    `json:"displayName" db:"display_name" example:"Rahul Kumar"`
	PhotoURL    *string   `json:"photoUrl,omitempty" db:"photo_url"`
	Bio         *string   `json:"bio,omitempty" db:"bio"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Role        UserRole  `json:"role" db:"role" example:"viewer"`
	ShowContact bool      `json:"showContact" db:"show_contact"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
