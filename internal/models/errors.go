package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned to callers of the relationship core.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidQuery      = "INVALID_QUERY"
	CodeAlreadyFriends    = "ALREADY_FRIENDS"
	CodeDuplicateRequest  = "DUPLICATE_REQUEST"
	CodeNoSuchRequest     = "NO_SUCH_REQUEST"
	CodeCodeCollision     = "CODE_COLLISION"
	CodeStorageConflict   = "STORAGE_CONFLICT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInconsistentState = "INCONSISTENT_STATE"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
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

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ErrorCode returns the AppError code of err, or CodeInternal for foreign errors.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewCodeNotFoundError(code string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("User with code %q not found", code),
	}
}

func NewInvalidQueryError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidQuery,
		Message: message,
	}
}

func NewAlreadyFriendsError() *AppError {
	return &AppError{
		Code:    CodeAlreadyFriends,
		Message: "You are already friends",
	}
}

func NewDuplicateRequestError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicateRequest,
		Message: message,
	}
}

func NewNoSuchRequestError(fromID uint) *AppError {
	return &AppError{
		Code:    CodeNoSuchRequest,
		Message: fmt.Sprintf("No pending friend request from user %d", fromID),
	}
}

func NewCodeCollisionError(code string) *AppError {
	return &AppError{
		Code:    CodeCodeCollision,
		Message: fmt.Sprintf("Public code %q is already taken", code),
	}
}

func NewStorageConflictError(err error) *AppError {
	return &AppError{
		Code:    CodeStorageConflict,
		Message: "Concurrent update detected, please retry",
		Err:     err,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInconsistentStateError(aID, bID uint) *AppError {
	return &AppError{
		Code:    CodeInconsistentState,
		Message: fmt.Sprintf("Relationship between users %d and %d is in an invalid state", aID, bID),
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil && appErr.Code != CodeInternal {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
