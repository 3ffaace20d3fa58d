package models

import (
	"errors"
	"net/http"
)

// ════════════════════════════════════════════════════════════
// Error Taxonomy
// ════════════════════════════════════════════════════════════

// Stable error codes surfaced to API clients. Engines attach one of these
// to every failure; controllers map them to HTTP statuses.
const (
	ErrCodeValidation           = "VALIDATION"
	ErrCodeRelationshipConflict = "RELATIONSHIP_CONFLICT"
	ErrCodeStorageError         = "STORAGE_ERROR"
	ErrCodePersistenceError     = "PERSISTENCE_ERROR"
)

// AppError is a typed error carrying a taxonomy code, a user-safe message
// and the underlying cause. Engines never swallow errors: the cause is kept
// for logging, the message is what the client sees.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the taxonomy code to a status per the API contract.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeRelationshipConflict:
		return http.StatusConflict
	case ErrCodeStorageError, ErrCodePersistenceError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func ValidationError(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

func RelationshipConflict(message string) *AppError {
	return &AppError{Code: ErrCodeRelationshipConflict, Message: message}
}

func StorageError(err error) *AppError {
	return &AppError{Code: ErrCodeStorageError, Message: "object storage operation failed", Err: err}
}

func PersistenceError(err error) *AppError {
	return &AppError{Code: ErrCodePersistenceError, Message: "database write failed", Err: err}
}

// AsAppError unwraps err into an AppError, defaulting unknown errors to
// PERSISTENCE_ERROR so the client never sees a raw internal message.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return PersistenceError(err)
}
