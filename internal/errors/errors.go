package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = errors.New("course not found")
	// ErrPaymentNotFound is returned when a payment is not found.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrCustomerNotFound is returned when a customer profile is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrPaymentAlreadySubmitted is returned when an open payment already
	// exists for the user and course.
	ErrPaymentAlreadySubmitted = errors.New("payment already submitted for this course")
	// ErrInvalidTransition is returned when verifying or rejecting a payment
	// that is no longer pending.
	ErrInvalidTransition = errors.New("payment is not pending")
	// ErrDuplicateReview is returned when the user has already reviewed the course.
	ErrDuplicateReview = errors.New("course already reviewed")
	// ErrAccessRequired is returned when an operation needs a course access grant.
	ErrAccessRequired = errors.New("course access required")
	// ErrTitleRequired is returned when a course is created without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrVideoURLRequired is returned when a course is created without a video URL.
	ErrVideoURLRequired = errors.New("youtube_url is required")
	// ErrNegativePrice is returned when a course price is negative.
	ErrNegativePrice = errors.New("price must not be negative")
	// ErrInvalidRating is returned when a review rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrCourseNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COURSE_NOT_FOUND")
	case ErrPaymentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PAYMENT_NOT_FOUND")
	case ErrCustomerNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CUSTOMER_NOT_FOUND")
	case ErrPaymentAlreadySubmitted:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_SUBMITTED")
	case ErrInvalidTransition:
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case ErrDuplicateReview:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REVIEW")
	case ErrAccessRequired:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_REQUIRED")
	case ErrTitleRequired, ErrVideoURLRequired, ErrNegativePrice, ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "STORE_ERROR")
	}
}
