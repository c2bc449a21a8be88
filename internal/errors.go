package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidInterval  ErrorCode = "INVALID_INTERVAL"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeRoomNotFound      ErrorCode = "ROOM_NOT_FOUND"
	ErrCodeTimeslotNotFound  ErrorCode = "TIMESLOT_NOT_FOUND"
	ErrCodeBookingNotFound   ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeRoleNotFound      ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeRecordNotFound    ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeReferenceNotFound ErrorCode = "REFERENCE_NOT_FOUND"

	ErrCodeEmailExists       ErrorCode = "EMAIL_EXISTS"
	ErrCodeSlotAlreadyBooked ErrorCode = "SLOT_ALREADY_BOOKED"
	ErrCodeDuplicateRecord   ErrorCode = "DUPLICATE_RECORD"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeMissingPermission  ErrorCode = "MISSING_PERMISSION"
)

// AppError is the closed error type every failure is classified into before
// it reaches the response boundary. Raw storage errors never leave the
// service layer.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound     = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrRoomNotFound     = NewNotFoundError("Room not found", ErrCodeRoomNotFound)
	ErrTimeslotNotFound = NewNotFoundError("Timeslot not found", ErrCodeTimeslotNotFound)
	ErrBookingNotFound  = NewNotFoundError("Booking not found", ErrCodeBookingNotFound)
	ErrRoleNotFound     = NewNotFoundError("Role not found", ErrCodeRoleNotFound)

	ErrEmailExists       = NewConflictError("Email already exists", ErrCodeEmailExists)
	ErrSlotAlreadyBooked = NewConflictError("Timeslot is already booked", ErrCodeSlotAlreadyBooked)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrMissingPermission  = NewForbiddenError("Insufficient permissions", ErrCodeMissingPermission)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ClassifyStorageError maps a translated GORM error onto the taxonomy.
// notFound and conflict let callers supply the entity-specific kinds;
// anything unrecognized becomes an internal error so driver text is never
// reflected to clients.
func ClassifyStorageError(err error, notFound, conflict *AppError) *AppError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound == nil {
			return NewNotFoundError("Record not found", ErrCodeRecordNotFound)
		}
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if conflict == nil {
			return NewConflictError("Duplicate record", ErrCodeDuplicateRecord)
		}
		return conflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return NewNotFoundError("Referenced record not found", ErrCodeReferenceNotFound).WithCause(err)
	default:
		return NewInternalError("storage operation failed", err)
	}
}

type errorResponse struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, errorResponse{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
