package usecase

import (
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/pkg/apperr"
)

// ValidateStatusTransition checks the requested edge against the fixed
// transition table.
func ValidateStatusTransition(from, to entity.OrderStatus) error {
	if !entity.CanTransition(from, to) {
		return apperr.ErrInvalidStatusTransition.WithInternal(
			"illegal status transition %s -> %s", from, to)
	}
	return nil
}

// ValidateCancellable checks that the order status is in the cancellable set.
func ValidateCancellable(status entity.OrderStatus) error {
	if !entity.Cancellable(status) {
		return apperr.ErrCancellationNotAllowed.WithInternal(
			"order in status %s cannot be cancelled", status)
	}
	return nil
}

// RefundPolicyFor computes the refund snapshot from the time remaining until
// the booking starts. Boundaries are inclusive: exactly 48h earns a full
// refund, exactly 24h a half refund.
func RefundPolicyFor(total float64, bookingStart, now time.Time) entity.RefundPolicy {
	hoursUntil := bookingStart.Sub(now).Hours()

	var percentage int
	switch {
	case hoursUntil >= 48:
		percentage = 100
	case hoursUntil >= 24:
		percentage = 50
	default:
		percentage = 0
	}

	refundAmount := roundHalfUp(total * float64(percentage) / 100)

	var processingFee float64
	if percentage > 0 {
		processingFee = roundHalfUp(refundAmount * 0.03)
		if processingFee > 100 {
			processingFee = 100
		}
	}

	return entity.RefundPolicy{
		IsRefundable:     percentage > 0,
		RefundPercentage: percentage,
		RefundAmount:     refundAmount,
		ProcessingFee:    processingFee,
	}
}
