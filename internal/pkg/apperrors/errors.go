package apperrors

import "errors"

// Sentinel errors for the application. Services wrap these so callers and the
// error middleware can classify failures with errors.Is.
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Conflict errors
	ErrConflict           = errors.New("conflict")
	ErrApplicationExists  = errors.New("an application already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Not-found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrRatingNotFound      = errors.New("rating not found")
	ErrCommentNotFound     = errors.New("comment not found")

	// Store errors: the underlying collaborator (database, file storage,
	// mailer) failed. Treated as opaque and surfaced without retry.
	ErrStoreFailure = errors.New("store operation failed")
)

// CustomError carries a sentinel plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap lets errors.Is see through to the sentinel
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewNotFoundError wraps a not-found sentinel with a message
func NewNotFoundError(sentinel error, message string) error {
	return &CustomError{Err: sentinel, Message: message}
}

// NewStoreError wraps an underlying store failure so the taxonomy is preserved
// while the original cause stays inspectable via Unwrap on the message path.
func NewStoreError(message string) error {
	return &CustomError{Err: ErrStoreFailure, Message: message}
}
