// Package errors defines the application-level error taxonomy shared by
// the use case and delivery layers.
package errors

import (
	"net/http"

	"parceltrack/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by business error code, so copies produced by
// WithDetails still compare equal to the predefined variables under
// errors.Is.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if errors.As(target, &other) {
		return e.errorCode == other.errorCode
	}

	return false
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors: malformed or out-of-range input rejected before
	// any transition or persistence attempt.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrCODAmountRequired = NewBaseError(
		http.StatusBadRequest,
		"COD_AMOUNT_REQUIRED",
		"a positive collection amount is required for cash-on-delivery parcels",
		"",
	)

	// Not-found errors.
	ErrParcelNotFound = NewBaseError(
		http.StatusNotFound,
		"PARCEL_NOT_FOUND",
		"parcel not found",
		"",
	)

	ErrAgentNotFound = NewBaseError(
		http.StatusNotFound,
		"AGENT_NOT_FOUND",
		"delivery agent not found",
		"",
	)

	// Authorization errors: role or assignment mismatch.
	ErrNotAssignedAgent = NewBaseError(
		http.StatusForbidden,
		"NOT_ASSIGNED_AGENT",
		"parcel is assigned to a different agent",
		"",
	)

	ErrCustomerCannotTransition = NewBaseError(
		http.StatusForbidden,
		"CUSTOMER_CANNOT_TRANSITION",
		"customers may not change parcel status",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	// Transition errors: requested status unreachable from the current
	// state, including any attempt to mutate a delivered parcel.
	ErrInvalidTransition = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_TRANSITION",
		"requested status is not reachable from the current status",
		"",
	)

	ErrParcelDelivered = NewBaseError(
		http.StatusUnprocessableEntity,
		"PARCEL_DELIVERED",
		"delivered parcels are immutable",
		"",
	)

	ErrAgentNotAssignable = NewBaseError(
		http.StatusUnprocessableEntity,
		"AGENT_NOT_ASSIGNABLE",
		"target agent is missing the agent role or is inactive",
		"",
	)

	ErrParcelNotDeletable = NewBaseError(
		http.StatusConflict,
		"PARCEL_NOT_DELETABLE",
		"parcels that have left the pre-transit states cannot be deleted",
		"",
	)

	// Conflict errors.
	ErrTrackingCodeConflict = NewBaseError(
		http.StatusConflict,
		"TRACKING_CODE_CONFLICT",
		"tracking code already exists",
		"",
	)

	ErrTransitionConflict = NewBaseError(
		http.StatusConflict,
		"TRANSITION_CONFLICT",
		"a concurrent update won the transition, retry against fresh state",
		"",
	)

	// Transaction-related errors.
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	// General errors.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)
)

// Response is the unified error envelope rendered by the HTTP error handler.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the business error code and details of a failure.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
