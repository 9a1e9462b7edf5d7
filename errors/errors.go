package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/TravelTales/travel-claims-backend/logger"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	NotFoundError        ErrorType = "NOT_FOUND"
	StoreConnectionError ErrorType = "STORE_CONNECTION_ERROR"
	StoreInsertError     ErrorType = "STORE_INSERT_ERROR"
	ServerError          ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func ValidationFailed(code string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       code,
		Message:    "Validation failed",
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingFields reports which required form fields were absent or blank.
func MissingFields(fields []string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "missing_fields",
		Message:    fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")),
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingFiles reports which required file parts were absent from the upload.
func MissingFiles(parts []string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "missing_files",
		Message:    fmt.Sprintf("Missing required files: %s", strings.Join(parts, ", ")),
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewStoreConnectionError signals that the document store could not be reached.
// Kept distinct from insert failures so operators can tell transient
// connectivity from data issues.
func NewStoreConnectionError(err error) *AppError {
	logger.GetLogger().Errorw("Document store connection error", "error", err)
	return &AppError{
		Type:       StoreConnectionError,
		Message:    "Database connection failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// NewStoreInsertError signals that the document store rejected a write.
func NewStoreInsertError(err error) *AppError {
	logger.GetLogger().Errorw("Document store insert error", "error", err)
	return &AppError{
		Type:       StoreInsertError,
		Message:    "Failed to save submission",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case StoreConnectionError, StoreInsertError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
