package create_appointment

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден ни по ID, ни по телефону
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrPastSlot возвращается, когда занятый интервал уже истек:
	// его конец не находится строго в будущем
	ErrPastSlot = errors.New("create_appointment: cannot schedule an appointment in the past")

	// ErrSlotTaken возвращается, когда слот (дата, время) уже занят
	ErrSlotTaken = errors.New("create_appointment: time slot is already booked")

	// ErrInvalidTime возвращается при нечитаемом времени слота
	ErrInvalidTime = errors.New("create_appointment: invalid start time")

	// ErrUnknownType возвращается, когда тип приема не входит в настроенный список
	ErrUnknownType = errors.New("create_appointment: unknown appointment type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
