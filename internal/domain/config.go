package domain

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// ScheduleConfig represents the front-desk scheduling configuration:
// the daily slot grid definition, the advance-booking window and the set of
// recognized appointment types. A single process-wide row, mutated only
// through the administrative settings endpoint.
type ScheduleConfig struct {
	ID int64

	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	// BlackoutTimes слоты, исключенные из сетки (например, обеденный перерыв)
	BlackoutTimes []types.TimeString
	// SlotOverride если задан, используется вместо сгенерированной сетки
	SlotOverride []types.TimeString

	AdvanceBookingDays int
	AppointmentTypes   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultScheduleConfig returns the configuration used until the
// administrative settings have been stored.
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		OpenTime:            DefaultOpenTime,
		CloseTime:           DefaultCloseTime,
		SlotDurationMinutes: DefaultSlotDuration,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
		AppointmentTypes:    append([]string(nil), DefaultAppointmentTypes...),
	}
}

// HasAppointmentType reports whether the type label is enabled
func (c *ScheduleConfig) HasAppointmentType(t string) bool {
	for _, enabled := range c.AppointmentTypes {
		if enabled == t {
			return true
		}
	}
	return false
}
