package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes forming the application error taxonomy.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT"
	CodeAuth       = "AUTH_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeUpload     = "UPLOAD_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse is the standardized API error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError is the application error type carried across layers.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewConflictError reports a duplicate unique key.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewAuthError reports bad credentials.
func NewAuthError(message string) *AppError {
	return &AppError{Code: CodeAuth, Message: message}
}

// NewNotFoundError reports that no matching document or subdocument exists.
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

// NewNotFoundMessage reports a not-found condition with a preformatted message.
func NewNotFoundMessage(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewUploadError reports an attachment persistence failure.
func NewUploadError(message string, err error) *AppError {
	return &AppError{Code: CodeUpload, Message: message, Err: err}
}

// NewInternalError wraps an unexpected store failure. The wrapped error is
// logged server-side; the message never leaks store details to the client.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// StatusForError maps an error to its HTTP status per the error taxonomy:
// validation/conflict/auth 400, not-found 404, everything else 500.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeConflict, CodeAuth, CodeUpload:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Code == CodeInternal {
			// Never leak the wrapped store error.
			msg = "Internal server error"
		}
		return c.Status(status).JSON(ErrorResponse{Error: msg, Code: appErr.Code})
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
