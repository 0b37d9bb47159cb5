package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode identifies the category of a domain error. Handlers map codes to
// HTTP statuses; application code matches on them with IsCode.
type ErrorCode string

const (
	CodeValidation      ErrorCode = "VALIDATION"
	CodeInvalidInterval ErrorCode = "INVALID_INTERVAL"
	CodeUnavailable     ErrorCode = "UNAVAILABLE"
	CodeSelfBooking     ErrorCode = "SELF_BOOKING"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeNotAuthorized   ErrorCode = "NOT_AUTHORIZED"
	CodeAlreadyApproved ErrorCode = "ALREADY_APPROVED"
	CodeUnknownState    ErrorCode = "UNKNOWN_STATE"
	CodeConflict        ErrorCode = "CONFLICT"
)

// Error is a domain-level error carrying a machine-readable code.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates a generic input validation error.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity string, id int64) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s with id %d not found", entity, id)}
}

// NewNotAuthorizedError creates an error for an access attempt by a user who
// has no claim on the entity.
func NewNotAuthorizedError(message string) *Error {
	return &Error{Code: CodeNotAuthorized, Message: message}
}

// NewInvalidIntervalError creates an error for a booking interval whose end
// does not come strictly after its start.
func NewInvalidIntervalError(start, end time.Time) *Error {
	return &Error{
		Code:    CodeInvalidInterval,
		Message: fmt.Sprintf("invalid booking interval: start %s, end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)),
	}
}

// NewUnavailableError creates an error for a booking attempt on an item that
// is not open for booking.
func NewUnavailableError(itemID int64) *Error {
	return &Error{Code: CodeUnavailable, Message: fmt.Sprintf("item %d is not available for booking", itemID)}
}

// NewSelfBookingError creates an error for an owner booking their own item.
func NewSelfBookingError(itemID, ownerID int64) *Error {
	return &Error{Code: CodeSelfBooking, Message: fmt.Sprintf("user %d cannot book own item %d", ownerID, itemID)}
}

// NewAlreadyApprovedError creates an error for a repeated approval.
func NewAlreadyApprovedError(bookingID int64) *Error {
	return &Error{Code: CodeAlreadyApproved, Message: fmt.Sprintf("booking %d is already approved", bookingID)}
}

// NewUnknownStateError creates an error for an unrecognized listing state.
// The message format is part of the HTTP contract.
func NewUnknownStateError(state string) *Error {
	return &Error{Code: CodeUnknownState, Message: fmt.Sprintf("Unknown state: %s", state)}
}

// NewConflictError creates an error for a uniqueness conflict.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// IsCode reports whether err is a domain Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
