package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrNotReschedulable возвращается, когда статус записи запрещает перенос.
	// Переносить можно только записи вне множества {In Progress, Completed, Cancelled}.
	ErrNotReschedulable = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrMissingFields возвращается, когда не указаны новые дата или время
	ErrMissingFields = errors.New("reschedule_appointment: new date and time are required")

	// ErrPastSlot возвращается, когда новый занятый интервал уже истек
	ErrPastSlot = errors.New("reschedule_appointment: cannot reschedule to a time in the past")

	// ErrSlotTaken возвращается, когда новый слот пересекается с другой записью
	ErrSlotTaken = errors.New("reschedule_appointment: time slot is already booked")

	// ErrInvalidTime возвращается при нечитаемом времени слота
	ErrInvalidTime = errors.New("reschedule_appointment: invalid start time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
