package domain

import "github.com/m04kA/HMS-SchedulingService/pkg/types"

// SlotStatus classification of a grid slot for a given date
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
)

// Slot is a labeled point in the daily time grid with its availability
type Slot struct {
	Time            types.TimeString
	DurationMinutes int
	Status          SlotStatus
}

// IsBookable returns true if a new appointment may be placed on the slot
func (s *Slot) IsBookable() bool {
	return s.Status == SlotAvailable
}
