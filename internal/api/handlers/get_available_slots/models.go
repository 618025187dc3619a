package get_available_slots

import (
	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/HMS-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse один слот сетки дня
type SlotResponse struct {
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// SlotsResponse HTTP response model: вся сетка дня с классификацией
type SlotsResponse struct {
	Date         string         `json:"date"`
	WithinWindow bool           `json:"withinWindow"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Time:            s.Time.String(),
			DurationMinutes: s.DurationMinutes,
			Status:          string(s.Status),
		}
	}
	return &SlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		WithinWindow: resp.WithinWindow,
		Slots:        slots,
	}
}
