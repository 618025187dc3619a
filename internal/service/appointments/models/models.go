package models

import (
	"errors"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	Date            *time.Time // Фильтр по дате (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	PatientID       *int64     // Фильтр по пациенту (опционально)
	IncludeInactive bool       // Включать ли отмененные записи
}

// UpdateAppointmentRequest запрос на частичное обновление записи
// Все поля опциональны - обновляются только переданные значения
type UpdateAppointmentRequest struct {
	PatientName     *string    `json:"patientName,omitempty"`
	PatientPhone    *string    `json:"patientPhone,omitempty"`
	Date            *time.Time `json:"-"`
	StartTime       *string    `json:"time,omitempty"`
	DurationMinutes *int       `json:"duration,omitempty"`
	Type            *string    `json:"type,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// UpdateStatusRequest запрос на перевод записи в новый статус
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID               int64   `json:"id"`
	PatientID        int64   `json:"patientId"`
	PatientName      string  `json:"patientName"`
	PatientPhone     string  `json:"patientPhone"`
	PatientVisibleID *string `json:"patientVisibleId,omitempty"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	DurationMinutes  int     `json:"durationMinutes"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               appt.ID,
		PatientID:        appt.PatientID,
		PatientName:      appt.PatientName,
		PatientPhone:     appt.PatientPhone,
		PatientVisibleID: appt.PatientVisibleID,
		Date:             appt.Date.Format(domain.DateFormat),
		Time:             appt.StartTime.String(),
		DurationMinutes:  appt.EffectiveDuration(),
		Type:             appt.Type,
		Status:           string(appt.Status),
		Notes:            appt.Notes,
		CreatedAt:        appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        appt.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список доменных записей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		out[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{
		Appointments: out,
		Total:        len(out),
	}
}

// ToDomainStatus валидирует и конвертирует строковый статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
