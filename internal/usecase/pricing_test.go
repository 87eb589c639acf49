package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePricing_NoDiscount(t *testing.T) {
	pricing := ComputePricing(800, 2, "")

	assert.Equal(t, float64(1600), pricing.Subtotal)
	assert.Equal(t, float64(160), pricing.ServiceFee)
	assert.Equal(t, float64(88), pricing.Tax)
	assert.Equal(t, float64(0), pricing.DiscountAmount)
	assert.Equal(t, float64(1848), pricing.Total)
}

func TestComputePricing_Welcome10(t *testing.T) {
	pricing := ComputePricing(1000, 1, "WELCOME10")

	assert.Equal(t, float64(1000), pricing.Subtotal)
	assert.Equal(t, float64(100), pricing.ServiceFee)
	assert.Equal(t, float64(55), pricing.Tax)
	assert.Equal(t, "WELCOME10", pricing.DiscountCode)
	assert.Equal(t, float64(100), pricing.DiscountAmount)
	assert.Equal(t, float64(1055), pricing.Total)
}

func TestComputePricing_DiscountCodeCaseInsensitive(t *testing.T) {
	pricing := ComputePricing(1000, 1, "welcome10")

	assert.Equal(t, "WELCOME10", pricing.DiscountCode)
	assert.Equal(t, float64(100), pricing.DiscountAmount)
}

func TestComputePricing_Save100(t *testing.T) {
	pricing := ComputePricing(500, 1, "SAVE100")

	assert.Equal(t, float64(500), pricing.Subtotal)
	assert.Equal(t, float64(100), pricing.DiscountAmount)
	assert.Equal(t, float64(478), pricing.Total) // 500 + 50 + 28 - 100
}

func TestComputePricing_UnknownCodeIgnored(t *testing.T) {
	pricing := ComputePricing(800, 2, "BOGUS50")

	assert.Empty(t, pricing.DiscountCode)
	assert.Equal(t, float64(0), pricing.DiscountAmount)
	assert.Equal(t, float64(1848), pricing.Total)
}

func TestComputePricing_TotalNeverNegative(t *testing.T) {
	// SAVE100 exceeds a tiny subtotal
	pricing := ComputePricing(10, 1, "SAVE100")

	assert.Equal(t, float64(0), pricing.Total)
}

func TestComputePricing_TotalIsSumOfParts(t *testing.T) {
	for _, basePrice := range []float64{1, 99, 800, 1234, 50000} {
		for participants := 1; participants <= 20; participants++ {
			pricing := ComputePricing(basePrice, participants, "")

			assert.Equal(t, pricing.Subtotal+pricing.ServiceFee+pricing.Tax, pricing.Total,
				"basePrice=%v participants=%d", basePrice, participants)
			assert.GreaterOrEqual(t, pricing.Total, pricing.Subtotal)
		}
	}
}
