package models

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// UpdateConfigRequest запрос на обновление конфигурации расписания
// Все поля опциональны - не переданные сохраняют текущее значение
type UpdateConfigRequest struct {
	OpenTime            *string  `json:"openTime,omitempty"`
	CloseTime           *string  `json:"closeTime,omitempty"`
	SlotDurationMinutes *int     `json:"slotDurationMinutes,omitempty"`
	BlackoutTimes       []string `json:"blackoutTimes,omitempty"`
	SlotOverride        []string `json:"slotOverride,omitempty"`
	AdvanceBookingDays  *int     `json:"advanceBookingDays,omitempty"`
	AppointmentTypes    []string `json:"appointmentTypes,omitempty"`
}

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	OpenTime            string   `json:"openTime"`
	CloseTime           string   `json:"closeTime"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	BlackoutTimes       []string `json:"blackoutTimes"`
	SlotOverride        []string `json:"slotOverride,omitempty"`
	AdvanceBookingDays  int      `json:"advanceBookingDays"`
	AppointmentTypes    []string `json:"appointmentTypes"`
	UpdatedAt           string   `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует доменную конфигурацию в response
func FromDomainConfig(cfg *domain.ScheduleConfig) *ConfigResponse {
	resp := &ConfigResponse{
		OpenTime:            cfg.OpenTime.String(),
		CloseTime:           cfg.CloseTime.String(),
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		BlackoutTimes:       timeStringsToStrings(cfg.BlackoutTimes),
		SlotOverride:        timeStringsToStrings(cfg.SlotOverride),
		AdvanceBookingDays:  cfg.AdvanceBookingDays,
		AppointmentTypes:    cfg.AppointmentTypes,
	}
	if !cfg.UpdatedAt.IsZero() {
		resp.UpdatedAt = cfg.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func timeStringsToStrings(values []types.TimeString) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
