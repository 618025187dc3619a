package domain

import "github.com/m04kA/HMS-SchedulingService/pkg/types"

// Default configuration values
const (
	DefaultDurationMinutes    = 30
	DefaultSlotDuration       = 30
	DefaultAdvanceBookingDays = 30
	DefaultOpenTime           = types.TimeString("9:00 AM")
	DefaultCloseTime          = types.TimeString("5:00 PM")
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240 // 4 hours
	MinAdvanceBookingDays  = 1
	MaxAdvanceBookingDays  = 365 // 1 year
	MaxNotesLength         = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultAppointmentTypes типы приемов, используемые пока административные
// настройки не переопределили список
var DefaultAppointmentTypes = []string{
	"Consultation",
	"Follow-up",
	"Check-up",
	"Emergency",
}

// BlockedStatuses статусы, запрещающие перенос и обмен слотами.
// Один и тот же набор применяется ко всем мутирующим операциям.
var BlockedStatuses = []AppointmentStatus{
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// InactiveStatuses статусы записей, не занимающих слот.
// Используются при фильтрации для подсчета доступности.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
