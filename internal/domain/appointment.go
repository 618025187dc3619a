package domain

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "Pending"
	StatusConfirmed   AppointmentStatus = "Confirmed"
	StatusInProgress  AppointmentStatus = "In Progress"
	StatusCompleted   AppointmentStatus = "Completed"
	StatusCancelled   AppointmentStatus = "Cancelled"
	StatusUrgent      AppointmentStatus = "Urgent"
	StatusTransferred AppointmentStatus = "Transferred"
)

// Appointment represents a scheduled front-desk appointment
type Appointment struct {
	ID int64

	PatientID int64
	// Denormalized patient data for history
	PatientName      string
	PatientPhone     string
	PatientVisibleID *string

	Date            time.Time // calendar date only, time component is always midnight
	StartTime       types.TimeString
	DurationMinutes int
	Type            string
	Status          AppointmentStatus
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot.
// Cancelled appointments release their slot; every other status keeps it.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsBlocked returns true if the appointment's status forbids reschedule and swap
func (a *Appointment) IsBlocked() bool {
	for _, s := range BlockedStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// CanBeRescheduled returns true if the appointment may be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return !a.IsBlocked()
}

// CanBeSwapped returns true if the appointment may take part in a slot swap
func (a *Appointment) CanBeSwapped() bool {
	return !a.IsBlocked()
}

// CanBeCancelled returns true if the appointment can still be cancelled.
// Defined by the transition table, so cancel and explicit status updates
// follow the same policy: In Progress can only be completed, never cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return CanTransition(a.Status, StatusCancelled)
}

// EffectiveDuration returns the stored duration, falling back to the default
// for legacy records with a missing or non-positive value.
func (a *Appointment) EffectiveDuration() int {
	if a.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return a.DurationMinutes
}

// Interval computes the occupied interval [start, start+duration).
// Derived, never stored. Returns an error for unparseable legacy times.
func (a *Appointment) Interval() (Interval, error) {
	return NewInterval(a.Date, a.StartTime, a.EffectiveDuration())
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	PatientID       *int64             // Фильтр по пациенту (опционально)
	IncludeInactive bool               // Включать ли отмененные записи
}

// AppointmentUpdate набор полей для частичного обновления записи
type AppointmentUpdate struct {
	PatientName     *string
	PatientPhone    *string
	Date            *time.Time
	StartTime       *types.TimeString
	DurationMinutes *int
	Type            *string
	Notes           *string
	Status          *AppointmentStatus
}
