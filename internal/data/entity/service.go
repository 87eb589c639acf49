package entity

import (
	"github.com/google/uuid"
)

// GuideService is a bookable tour offering. Orders price against its
// BasePrice at creation time.
type GuideService struct {
	Base
	GuideID         uuid.UUID `db:"guide_id"`
	GuideName       string    `db:"guide_name"`
	Title           string    `db:"title"`
	BasePrice       float64   `db:"base_price"`
	Location        string    `db:"location"`
	MaxParticipants int       `db:"max_participants"`
	IsActive        bool      `db:"is_active"`
}
