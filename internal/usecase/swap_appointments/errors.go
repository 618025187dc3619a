package swap_appointments

import "errors"

var (
	// ErrMissingFields возвращается, когда не указан один из ID записей
	ErrMissingFields = errors.New("swap_appointments: both appointment IDs are required")

	// ErrAppointmentNotFound возвращается, когда одна из записей не найдена
	ErrAppointmentNotFound = errors.New("swap_appointments: appointment not found")

	// ErrNotSwappable возвращается, когда статус одной из записей запрещает обмен.
	// Блокирующее множество то же, что и для переноса: {In Progress, Completed, Cancelled}.
	ErrNotSwappable = errors.New("swap_appointments: appointment cannot be swapped")

	// ErrInternal возвращается при внутренних ошибках usecase:
	// прерванная транзакция обмена не оставляет видимых изменений
	ErrInternal = errors.New("swap_appointments: internal error")
)
