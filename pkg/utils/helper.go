package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateOrderNumber creates a human-readable order number.
// Format: GD{YY}{MM}{4-digit random}. Collisions are possible and accepted;
// the order UUID remains the real identity.
func GenerateOrderNumber(now time.Time) string {
	yearPart := now.Format("06")
	monthPart := now.Format("01")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("GD%s%s%s", yearPart, monthPart, randomPart)
}
