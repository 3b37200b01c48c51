package service

import "errors"

// Error kinds. The HTTP layer maps each kind to a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error is a service failure with a stable machine code and a client-safe
// message. It unwraps to its kind.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation builds an ad-hoc validation error for input checks
func Validation(message string) error {
	return newError(ErrValidation, "validation_error", message)
}

var (
	ErrInvalidQuantity  = newError(ErrValidation, "invalid_quantity", "quantity must be a positive integer")
	ErrStartDateInPast  = newError(ErrValidation, "invalid_dates", "start date cannot be in the past")
	ErrInvalidPeriod    = newError(ErrValidation, "invalid_dates", "end date must be >= start date")
	ErrEmptyCart        = newError(ErrValidation, "empty_cart", "cannot create reservation from empty cart")
	ErrInvalidAmount    = newError(ErrValidation, "invalid_amount", "amount must be greater than 0")
	ErrAmountMismatch   = newError(ErrValidation, "amount_mismatch", "payment amount does not match reservation total")
	ErrInvalidEmail     = newError(ErrValidation, "invalid_email", "invalid email address")
	ErrPasswordTooShort = newError(ErrValidation, "weak_password", "password must be at least 8 characters long")
	ErrInvalidRole      = newError(ErrValidation, "invalid_role", "invalid role")

	ErrToolNotFound        = newError(ErrNotFound, "tool_not_found", "tool not found")
	ErrNoCurrentCart       = newError(ErrNotFound, "cart_not_found", "no current cart")
	ErrCartItemNotFound    = newError(ErrNotFound, "cart_item_not_found", "cart item not found")
	ErrReservationNotFound = newError(ErrNotFound, "reservation_not_found", "reservation not found")

	ErrNotAvailable         = newError(ErrConflict, "not_available", "tool is not available for the requested period")
	ErrAlreadyInCart        = newError(ErrConflict, "already_in_cart", "tool already in cart for same dates, update quantity instead")
	ErrOverlappingDates     = newError(ErrConflict, "overlapping_dates", "tool already in cart for overlapping dates")
	ErrAlreadyPaid          = newError(ErrConflict, "already_paid", "reservation already paid")
	ErrReservationCancelled = newError(ErrConflict, "reservation_cancelled", "reservation is cancelled")
	ErrPaymentExists        = newError(ErrConflict, "payment_exists", "reservation already has a successful payment")
	ErrEmailInUse           = newError(ErrConflict, "email_in_use", "email already in use")
	ErrStatusTransition     = newError(ErrConflict, "invalid_status_transition", "reservation cannot move to the requested status")

	ErrAccessDenied        = newError(ErrForbidden, "forbidden", "access denied")
	ErrNotReservationOwner = newError(ErrForbidden, "forbidden", "you cannot pay for a reservation that is not yours")

	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid_credentials", "invalid credentials")
	ErrInvalidToken       = newError(ErrUnauthenticated, "invalid_token", "invalid or expired token")
)
