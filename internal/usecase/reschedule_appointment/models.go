package reschedule_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	ID        int64            // ID переносимой записи
	NewDate   time.Time        // Новая дата приема
	NewTime   types.TimeString // Новое время начала
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64            // ID записи
	PatientID       int64            // ID пациента
	PatientName     string           // Имя пациента
	Date            time.Time        // Новая дата приема
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи
}

// ConflictError ошибка конфликта слота с указанием, кем он занят.
// Сообщение обязано называть пациента конфликтующей записи.
type ConflictError struct {
	PatientName string
	Date        time.Time
	Time        types.TimeString
}

func (e *ConflictError) Error() string {
	return "slot " + e.Time.String() + " on " + e.Date.Format("2006-01-02") +
		" is already booked by " + e.PatientName
}

// Unwrap позволяет распознавать конфликт через errors.Is(err, ErrSlotTaken)
func (e *ConflictError) Unwrap() error {
	return ErrSlotTaken
}
