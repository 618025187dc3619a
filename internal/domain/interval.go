package domain

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// Interval is the continuous time range [Start, End) an appointment holds.
// Intervals are half-open: an interval ending exactly where another starts
// does not overlap it, so back-to-back appointments are allowed.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval computes the occupied interval for a slot on the given date
func NewInterval(date time.Time, start types.TimeString, durationMinutes int) (Interval, error) {
	startInstant, err := start.At(date)
	if err != nil {
		return Interval{}, err
	}

	return Interval{
		Start: startInstant,
		End:   startInstant.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// Overlaps reports whether two half-open intervals intersect
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// HasElapsed reports whether the interval's end is not in the future.
// A slot whose end equals now is considered elapsed.
func (i Interval) HasElapsed(now time.Time) bool {
	return !i.End.After(now)
}

// FindConflict ищет активную запись, чей занятый интервал пересекается с
// интервалом кандидата. Запись с id равным excludeID пропускается (перенос
// не конфликтует сам с собой). Записи с нечитаемым legacy-временем
// пропускаются. Возвращает nil, если конфликтов нет.
func FindConflict(candidate Interval, appointments []*Appointment, excludeID int64) *Appointment {
	for _, appt := range appointments {
		if appt.ID == excludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}

		occupied, err := appt.Interval()
		if err != nil {
			continue
		}

		if candidate.Overlaps(occupied) {
			return appt
		}
	}

	return nil
}
