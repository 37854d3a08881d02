package domain

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// AvailableSlot represents a bookable time slot offered to a caller.
// A slot is an advisory snapshot, not a reservation.
type AvailableSlot struct {
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
}

// SlotFromRange builds a slot from a time range
func SlotFromRange(r timerange.Range) AvailableSlot {
	return AvailableSlot{
		StartAt:         r.Start,
		EndAt:           r.End,
		DurationMinutes: int(r.Duration() / time.Minute),
	}
}
