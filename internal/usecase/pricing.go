package usecase

import (
	"math"
	"strings"

	"guidee-orders/internal/data/entity"
)

const (
	serviceFeeRate = 0.10
	taxRate        = 0.05
)

// ComputePricing derives the pricing breakdown for an order. Unknown discount
// codes are silently ignored. Rounding is half-up on each intermediate before
// summation, so total must be assembled in this exact order.
func ComputePricing(basePrice float64, participants int, discountCode string) entity.Pricing {
	subtotal := basePrice * float64(participants)
	serviceFee := roundHalfUp(subtotal * serviceFeeRate)
	tax := roundHalfUp((subtotal + serviceFee) * taxRate)

	code, discount := applyDiscount(subtotal, discountCode)

	total := subtotal + serviceFee + tax - discount
	if total < 0 {
		total = 0
	}

	return entity.Pricing{
		BasePrice:      basePrice,
		Subtotal:       subtotal,
		ServiceFee:     serviceFee,
		Tax:            tax,
		DiscountCode:   code,
		DiscountAmount: discount,
		Total:          total,
	}
}

// applyDiscount matches the two recognized codes case-insensitively and
// returns the canonical code plus the discount amount.
func applyDiscount(subtotal float64, discountCode string) (string, float64) {
	switch strings.ToUpper(strings.TrimSpace(discountCode)) {
	case "WELCOME10":
		return "WELCOME10", roundHalfUp(subtotal * 0.10)
	case "SAVE100":
		return "SAVE100", 100
	default:
		return "", 0
	}
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
