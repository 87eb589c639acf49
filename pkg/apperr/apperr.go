package apperr

import (
	"fmt"
	"net/http"
)

// Error is a typed application error. Code and UserMessage are part of the
// public API contract; Internal is for logs only and must never be written
// to a response body.
type Error struct {
	Code        string
	HTTPStatus  int
	UserMessage string
	Internal    string
	cause       error
}

func (e *Error) Error() string {
	if e.Internal != "" {
		return e.Internal
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithInternal returns a copy carrying an internal detail message.
func (e *Error) WithInternal(format string, args ...any) *Error {
	clone := *e
	clone.Internal = fmt.Sprintf(format, args...)
	return &clone
}

// WithCause returns a copy wrapping the underlying error.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	if clone.Internal == "" && err != nil {
		clone.Internal = err.Error()
	}
	return &clone
}

func newError(code string, status int, userMessage, internal string) *Error {
	return &Error{
		Code:        code,
		HTTPStatus:  status,
		UserMessage: userMessage,
		Internal:    internal,
	}
}

// Error catalogue. Handlers surface UserMessage and HTTPStatus verbatim.
var (
	ErrOrderNotFound = newError("ORDER_NOT_FOUND", http.StatusNotFound,
		"The requested order could not be found", "order not found")

	ErrInvalidStatusTransition = newError("INVALID_STATUS_TRANSITION", http.StatusConflict,
		"The order cannot change to the requested status", "illegal status transition")

	ErrCancellationNotAllowed = newError("CANCELLATION_NOT_ALLOWED", http.StatusConflict,
		"This order can no longer be cancelled", "order status is not cancellable")

	ErrInsufficientPermissions = newError("INSUFFICIENT_PERMISSIONS", http.StatusForbidden,
		"You do not have permission to access this order", "caller is not owner, guide or admin")

	ErrInvalidRequestData = newError("INVALID_REQUEST_DATA", http.StatusBadRequest,
		"The request contains missing or invalid data", "request validation failed")

	ErrServiceNotAvailable = newError("SERVICE_NOT_AVAILABLE", http.StatusConflict,
		"The selected service is not available for booking", "service missing or inactive")

	ErrParticipantLimitExceeded = newError("PARTICIPANT_LIMIT_EXCEEDED", http.StatusBadRequest,
		"Participant count must be between 1 and 20", "participants outside 1-20")

	ErrPaymentFailed = newError("PAYMENT_FAILED", http.StatusPaymentRequired,
		"The payment could not be processed", "payment processing failed")

	ErrPaymentRequired = newError("PAYMENT_REQUIRED", http.StatusPaymentRequired,
		"Payment is required before this action", "payment not completed")

	ErrBookingConflict = newError("BOOKING_CONFLICT", http.StatusConflict,
		"The requested time slot is no longer available", "booking slot conflict")

	ErrRefundNotAvailable = newError("REFUND_NOT_AVAILABLE", http.StatusConflict,
		"A refund is not available for this order", "refund not available")

	ErrInternal = newError("SYSTEM_ERROR", http.StatusInternalServerError,
		"An unexpected error occurred, please try again later", "internal error")
)
