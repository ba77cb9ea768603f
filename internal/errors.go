package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodePasscodeFormat   ErrorCode = "INVALID_PASSCODE_FORMAT"
	ErrCodeMissingDateRange ErrorCode = "MISSING_DATE_RANGE"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"

	ErrCodePropertyNotFound ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeEmployeeNotFound ErrorCode = "EMPLOYEE_NOT_FOUND"

	ErrCodeMissingSession       ErrorCode = "MISSING_SESSION"
	ErrCodeInvalidSession       ErrorCode = "INVALID_SESSION"
	ErrCodeInvalidPasscode      ErrorCode = "INVALID_PASSCODE"
	ErrCodeCrossPropertySession ErrorCode = "CROSS_PROPERTY_SESSION"
	ErrCodeAdminRequired        ErrorCode = "ADMIN_REQUIRED"

	ErrCodeInvalidTransition ErrorCode = "INVALID_CLOCK_TRANSITION"
	ErrCodeDuplicatePasscode ErrorCode = "DUPLICATE_PASSCODE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
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
	ErrPropertyNotFound = NewNotFoundError("Property not found", ErrCodePropertyNotFound)
	ErrEmployeeNotFound = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)

	ErrMissingSession       = NewUnauthorizedError("Missing session token", ErrCodeMissingSession)
	ErrInvalidSession       = NewUnauthorizedError("Invalid or expired session", ErrCodeInvalidSession)
	ErrInvalidPasscode      = NewUnauthorizedError("Unauthorized or invalid passcode", ErrCodeInvalidPasscode)
	ErrCrossPropertySession = NewForbiddenError("Cross-property session", ErrCodeCrossPropertySession)
	ErrAdminRequired        = NewForbiddenError("Admin access required", ErrCodeAdminRequired)

	ErrInvalidTransition = NewConflictError("Clock action violates current state", ErrCodeInvalidTransition)
	ErrDuplicatePasscode = NewConflictError("Passcode already in use. Choose a different 4-digit code.", ErrCodeDuplicatePasscode)

	ErrPasscodeFormat   = NewValidationError("Passcode must be exactly 4 digits.", ErrCodePasscodeFormat)
	ErrMissingDateRange = NewValidationError("start and end are required (ISO date strings)", ErrCodeMissingDateRange)
	ErrInvalidDateRange = NewValidationError("Invalid start or end date", ErrCodeInvalidDateRange)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
