package update_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/internal/service/appointments/models"
)

// UpdateAppointmentRequest HTTP request model
// Дата передается строкой и парсится до вызова сервиса
type UpdateAppointmentRequest struct {
	PatientName     *string `json:"patientName,omitempty"`
	PatientPhone    *string `json:"patientPhone,omitempty"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Type            *string `json:"type,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest() (*models.UpdateAppointmentRequest, error) {
	req := &models.UpdateAppointmentRequest{
		PatientName:     r.PatientName,
		PatientPhone:    r.PatientPhone,
		StartTime:       r.Time,
		DurationMinutes: r.DurationMinutes,
		Type:            r.Type,
		Notes:           r.Notes,
	}
	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}
	return req, nil
}
