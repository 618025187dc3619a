package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/HMS-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID       *int64  `json:"patientId,omitempty"`
	PatientPhone    string  `json:"patientPhone,omitempty"`
	Date            string  `json:"date"` // "2026-03-15"
	Time            string  `json:"time"` // "10:30 AM"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Type            string  `json:"type"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:    r.PatientID,
		PatientPhone: r.PatientPhone,
		Date:         date,
		StartTime:    startTime,
		DurationMin:  r.DurationMinutes,
		Type:         r.Type,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               resp.ID,
		PatientID:        resp.PatientID,
		PatientName:      resp.PatientName,
		PatientPhone:     resp.PatientPhone,
		PatientVisibleID: resp.PatientVisibleID,
		Date:             resp.Date.Format(domain.DateFormat),
		Time:             resp.StartTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Type:             resp.Type,
		Status:           resp.Status,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
