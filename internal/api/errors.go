// errors.go - Structured error handling for API responses
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fileforge/backend/internal/pipeline"
)

// APIError represents a structured API error response. Message serializes
// under the "error" key, which is the wire contract for every failure.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors, one per taxonomy entry. All are terminal for the
// request; nothing is retried.

// NewBadRequestError creates a generic 400 for malformed requests.
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
}

// NewRateLimitedError creates a 429 Too Many Requests error.
func NewRateLimitedError() *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Code:    "RATE_LIMITED",
		Message: "too many requests",
	}
}

// NewMissingInputError creates a 400 for an absent required file or field.
func NewMissingInputError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "MISSING_INPUT",
		Message: message,
	}
}

// NewUnsupportedFormatError creates a 400 for an extension or target format
// outside the allow-list.
func NewUnsupportedFormatError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "UNSUPPORTED_FORMAT",
		Message: message,
	}
}

// NewOversizedFileError creates a 413 Payload Too Large error.
func NewOversizedFileError(message string) *APIError {
	return &APIError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "OVERSIZED_FILE",
		Message: message,
	}
}

// NewContentMismatchError creates a 400 for bytes that fail the
// magic-number check for their claimed extension.
func NewContentMismatchError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "CONTENT_MISMATCH",
		Message: message,
	}
}

// NewInvalidPageError creates a 400 for an out-of-range page number.
func NewInvalidPageError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "INVALID_PAGE_NUMBER",
		Message: message,
	}
}

// NewInsufficientFilesError creates a 400 for a merge with fewer than two
// retained documents.
func NewInsufficientFilesError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "INSUFFICIENT_FILES",
		Message: message,
	}
}

// NewConversionFailedError creates a 500. The downstream library/process
// error is logged by the handler, never leaked to the client.
func NewConversionFailedError(message string) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "CONVERSION_FAILED",
		Message: message,
	}
}

// fromReject maps a pipeline rejection onto its HTTP representation.
func fromReject(rej *pipeline.Reject) *APIError {
	switch rej.Kind {
	case pipeline.KindMissing:
		return NewMissingInputError(rej.Message)
	case pipeline.KindUnsupported:
		return NewUnsupportedFormatError(rej.Message)
	case pipeline.KindOversized:
		return NewOversizedFileError(rej.Message)
	case pipeline.KindMismatch:
		return NewContentMismatchError(rej.Message)
	case pipeline.KindInsufficient:
		return NewInsufficientFilesError(rej.Message)
	default:
		return NewBadRequestError(rej.Message)
	}
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "an unexpected error occurred",
		}
	}

	if !c.Response().Committed {
		c.JSON(apiErr.Status, apiErr)
	}
}
