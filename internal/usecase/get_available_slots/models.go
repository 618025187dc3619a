package get_available_slots

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

// Request модель запроса на получение слотов на дату
type Request struct {
	Date time.Time // Дата, для которой запрашивается сетка (без времени)
}

// Response модель ответа: вся сетка дня с классификацией каждого слота
type Response struct {
	Date         time.Time     // Дата, на которую запрашивались слоты
	Slots        []domain.Slot // Сетка слотов с классификацией
	WithinWindow bool          // Попадает ли дата в окно предварительной записи
}

// Available возвращает только доступные для записи слоты
func (r *Response) Available() []domain.Slot {
	out := make([]domain.Slot, 0, len(r.Slots))
	for _, s := range r.Slots {
		if s.Status == domain.SlotAvailable {
			out = append(out, s)
		}
	}
	return out
}

// Booked возвращает только занятые слоты
func (r *Response) Booked() []domain.Slot {
	out := make([]domain.Slot, 0, len(r.Slots))
	for _, s := range r.Slots {
		if s.Status == domain.SlotBooked {
			out = append(out, s)
		}
	}
	return out
}
