package reschedule_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/HMS-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewDate string `json:"newDate"` // "2026-03-20"
	NewTime string `json:"newTime"` // "2:00 PM"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	PatientName     string `json:"patientName"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(id int64) (*rescheduleAppointment.Request, error) {
	var date time.Time
	if r.NewDate != "" {
		parsed, err := time.Parse(domain.DateFormat, r.NewDate)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	var startTime types.TimeString
	if r.NewTime != "" {
		parsed, err := types.NewTimeStringFromString(r.NewTime)
		if err != nil {
			return nil, err
		}
		startTime = parsed
	}

	return &rescheduleAppointment.Request{
		ID:      id,
		NewDate: date,
		NewTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		PatientName:     resp.PatientName,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
	}
}
