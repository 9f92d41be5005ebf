// Package errors provides the application error type shared by the record
// store, services and HTTP handlers. Handlers render an AppError as
// {"error":{"code","message"}} and never expose the internal cause.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError carrying the same code, so a
// wrapped copy still matches its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Session & PIN errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidPIN   = &AppError{Code: "INVALID_PIN", Message: "Incorrect PIN", StatusCode: http.StatusUnauthorized}
	ErrPINNotSet    = &AppError{Code: "PIN_NOT_SET", Message: "No PIN has been set", StatusCode: http.StatusNotFound}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Storage errors.
var (
	ErrCorruptRecord = &AppError{Code: "CORRUPT_RECORD", Message: "Stored record could not be decoded", StatusCode: http.StatusInternalServerError}
	ErrStorage       = &AppError{Code: "STORAGE_ERROR", Message: "Storage backend failure", StatusCode: http.StatusInternalServerError}
)

// Record errors.
var (
	ErrProfileNotFound     = &AppError{Code: "PROFILE_NOT_FOUND", Message: "Profile not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDownloadNotFound    = &AppError{Code: "DOWNLOAD_NOT_FOUND", Message: "Download not found", StatusCode: http.StatusNotFound}
	ErrUnsupportedFormat   = &AppError{Code: "UNSUPPORTED_FORMAT", Message: "Unsupported export format", StatusCode: http.StatusBadRequest}
)
