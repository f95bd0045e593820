package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id or username is unknown.
	ErrUserNotFound = errors.New("user not found")
	// ErrModeratorNotFound is returned when the acting moderator id is unknown.
	ErrModeratorNotFound = errors.New("moderator not found")
	// ErrCategoryNotFound is returned when a category id or slug is unknown.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrPostNotFound is returned when a post id is unknown.
	ErrPostNotFound = errors.New("post not found")
	// ErrReplyNotFound is returned when a reply id is unknown.
	ErrReplyNotFound = errors.New("reply not found")
	// ErrPermissionDenied is returned when the permission engine refuses an action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAdminProtected is returned when a ban or mute targets an administrator.
	ErrAdminProtected = errors.New("administrators cannot be banned or muted")
	// ErrMuteDurationRequired is returned when a mute has no positive duration.
	ErrMuteDurationRequired = errors.New("a positive mute duration is required")
	// ErrInvalidCredentials is returned on a failed login or password check.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBanned is returned when a banned user attempts to create content.
	ErrBanned = errors.New("you cannot create content while banned")
	// ErrMuted is returned when a muted user attempts to create content.
	ErrMuted = errors.New("you cannot create content while muted")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrModeratorNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MODERATOR_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrReplyNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REPLY_NOT_FOUND")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrAdminProtected):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_PROTECTED")
	case errors.Is(err, ErrBanned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "BANNED")
	case errors.Is(err, ErrMuted):
		return NewHTTPError(http.StatusForbidden, err.Error(), "MUTED")
	case errors.Is(err, ErrMuteDurationRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MUTE_DURATION_REQUIRED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "an unexpected error occurred", "INTERNAL_ERROR")
	}
}
