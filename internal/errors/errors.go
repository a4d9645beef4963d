package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidID is returned when a path or body identifier is not an ObjectID.
	ErrInvalidID = errors.New("invalid identifier format")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrServiceNotFound is returned when a service is not found.
	ErrServiceNotFound = errors.New("service not found")
	// ErrBookingNotFound is returned when a booking is not found.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidRating is returned when a review rating is not an integer.
	ErrInvalidRating = errors.New("invalid rating")
	// ErrInvalidRole is returned when a role is neither user nor admin.
	ErrInvalidRole = errors.New("invalid role")
	// ErrEmptyUpdate is returned when a patch carries no updatable field.
	ErrEmptyUpdate = errors.New("no fields to update")
	// ErrInvalidField is returned when a patch key is an update operator or
	// otherwise cannot be stored as a field name.
	ErrInvalidField = errors.New("invalid field name")
	// ErrEmailRequired is returned when a registration or stats lookup carries no email.
	ErrEmailRequired = errors.New("email is required")
	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors. Anything
// unknown becomes a generic 500 without detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, "Invalid ID format.", "INVALID_ID")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrEmailRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_REQUIRED")
	case errors.Is(err, ErrInvalidField):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FIELD")
	case errors.Is(err, ErrEmptyUpdate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_UPDATE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrServiceNotFound):
		return NewHTTPError(http.StatusNotFound, "Service not found.", "SERVICE_NOT_FOUND")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, "Booking not found.", "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error.", "INTERNAL_ERROR")
	}
}
