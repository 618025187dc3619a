package get_available_slots

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// generateSlotGrid генерирует упорядоченную сетку слотов на день из
// конфигурации. Сетка не зависит от записей: это чистая функция
// конфигурация -> последовательность.
//
// Если в конфигурации задан явный список слотов (SlotOverride), используется
// он; иначе слоты идут от открытия до закрытия с шагом slotDuration, минус
// blackout-метки. Пустая конфигурация дает пустую сетку - бронирование на
// такой день отклонят проверки конфликтов, а не сама сетка.
func generateSlotGrid(cfg *domain.ScheduleConfig) ([]types.TimeString, error) {
	if len(cfg.SlotOverride) > 0 {
		return dedupe(cfg.SlotOverride), nil
	}

	if cfg.OpenTime.IsZero() || cfg.CloseTime.IsZero() || cfg.SlotDurationMinutes <= 0 {
		return []types.TimeString{}, nil
	}

	blackout := make(map[types.TimeString]struct{}, len(cfg.BlackoutTimes))
	for _, b := range cfg.BlackoutTimes {
		blackout[b] = struct{}{}
	}

	openMin, err := cfg.OpenTime.MinutesOfDay()
	if err != nil {
		return nil, err
	}
	closeMin, err := cfg.CloseTime.MinutesOfDay()
	if err != nil {
		return nil, err
	}

	grid := make([]types.TimeString, 0)

	// Шагаем по минутам от начала суток: AddMinutes заворачивает через
	// полночь, поэтому сравнивать метки после сдвига нельзя - слот,
	// пересекающий полночь, оказался бы "раньше" закрытия.
	for cur := openMin; cur+cfg.SlotDurationMinutes <= closeMin; cur += cfg.SlotDurationMinutes {
		label, err := cfg.OpenTime.AddMinutes(cur - openMin)
		if err != nil {
			return nil, err
		}
		if _, skip := blackout[label]; !skip {
			grid = append(grid, label)
		}
	}

	return grid, nil
}

// classifySlots классифицирует каждый слот сетки как
// available / booked / unavailable.
//
// Слот booked, если его интервал пересекается с занятым интервалом активной
// записи: пересечение интервалов - единственное авторитетное определение
// занятости, точное совпадение метки - его частный случай. Слот unavailable,
// если его интервал уже истек (сегодняшние прошедшие слоты) или дата вне окна
// предварительной записи. Иначе слот available.
func classifySlots(
	grid []types.TimeString,
	cfg *domain.ScheduleConfig,
	date time.Time,
	now time.Time,
	appointments []*domain.Appointment,
	withinWindow bool,
) []domain.Slot {
	result := make([]domain.Slot, len(grid))

	for i, label := range grid {
		slot := domain.Slot{
			Time:            label,
			DurationMinutes: cfg.SlotDurationMinutes,
			Status:          domain.SlotAvailable,
		}

		interval, err := domain.NewInterval(date, label, cfg.SlotDurationMinutes)
		if err != nil {
			// Нечитаемая метка сетки не может быть забронирована
			slot.Status = domain.SlotUnavailable
			result[i] = slot
			continue
		}

		switch {
		case !withinWindow || interval.HasElapsed(now):
			slot.Status = domain.SlotUnavailable
		case domain.FindConflict(interval, appointments, 0) != nil:
			slot.Status = domain.SlotBooked
		}

		result[i] = slot
	}

	return result
}

// isWithinAdvanceBookingWindow проверяет, что дата попадает в окно
// предварительной записи: today <= date <= today + windowDays.
// Экспортируется usecase-ом отдельным предикатом - календарь в UI должен
// блокировать недопустимые даты до выбора слота.
func isWithinAdvanceBookingWindow(date time.Time, now time.Time, windowDays int) bool {
	today := truncateToDay(now)
	dateOnly := truncateToDay(date)

	if dateOnly.Before(today) {
		return false
	}

	maxDate := today.AddDate(0, 0, windowDays)
	return !dateOnly.After(maxDate)
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dedupe убирает дубликаты меток, сохраняя порядок
func dedupe(labels []types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(labels))
	out := make([]types.TimeString, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
