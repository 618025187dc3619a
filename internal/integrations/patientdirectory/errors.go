package patientdirectory

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден ни по ID, ни по телефону
	ErrPatientNotFound = errors.New("patient not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("patientdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("patientdirectory client: invalid response")
)
