package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

type stubApptRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (s *stubApptRepo) GetByFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return s.appointments, s.err
}

type stubConfigRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (s *stubConfigRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGenerateSlotGrid(t *testing.T) {
	t.Run("standard business day", func(t *testing.T) {
		cfg := &domain.ScheduleConfig{
			OpenTime:            "9:00 AM",
			CloseTime:           "11:00 AM",
			SlotDurationMinutes: 30,
		}

		grid, err := generateSlotGrid(cfg)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM"}, grid)
	})

	t.Run("blackout times are excluded", func(t *testing.T) {
		cfg := &domain.ScheduleConfig{
			OpenTime:            "9:00 AM",
			CloseTime:           "11:00 AM",
			SlotDurationMinutes: 30,
			BlackoutTimes:       []types.TimeString{"9:30 AM", "10:30 AM"},
		}

		grid, err := generateSlotGrid(cfg)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"9:00 AM", "10:00 AM"}, grid)
	})

	t.Run("override replaces generated grid", func(t *testing.T) {
		cfg := &domain.ScheduleConfig{
			OpenTime:            "9:00 AM",
			CloseTime:           "5:00 PM",
			SlotDurationMinutes: 30,
			SlotOverride:        []types.TimeString{"8:00 AM", "12:30 PM", "8:00 AM", "6:00 PM"},
		}

		grid, err := generateSlotGrid(cfg)
		require.NoError(t, err)
		// Дубликаты убраны, порядок сохранен
		assert.Equal(t, []types.TimeString{"8:00 AM", "12:30 PM", "6:00 PM"}, grid)
	})

	t.Run("slot crossing close time is dropped", func(t *testing.T) {
		cfg := &domain.ScheduleConfig{
			OpenTime:            "9:00 AM",
			CloseTime:           "10:15 AM",
			SlotDurationMinutes: 30,
		}

		grid, err := generateSlotGrid(cfg)
		require.NoError(t, err)
		// Слот 10:00-10:30 вышел бы за закрытие
		assert.Equal(t, []types.TimeString{"9:00 AM", "9:30 AM"}, grid)
	})

	t.Run("late close time with step not covering the day terminates", func(t *testing.T) {
		// Шаг от 11:00 PM перешагнул бы полночь; сетка должна
		// закончиться, а не зациклиться на завернутых метках
		cfg := &domain.ScheduleConfig{
			OpenTime:            "9:00 AM",
			CloseTime:           "11:30 PM",
			SlotDurationMinutes: 60,
		}

		grid, err := generateSlotGrid(cfg)
		require.NoError(t, err)
		require.Len(t, grid, 14)
		assert.Equal(t, types.TimeString("9:00 AM"), grid[0])
		assert.Equal(t, types.TimeString("10:00 PM"), grid[len(grid)-1])
	})

	t.Run("empty config yields empty grid", func(t *testing.T) {
		grid, err := generateSlotGrid(&domain.ScheduleConfig{})
		require.NoError(t, err)
		assert.Empty(t, grid)
	})
}

func TestIsWithinAdvanceBookingWindow(t *testing.T) {
	now := time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	assert.True(t, isWithinAdvanceBookingWindow(day(0), now, 30), "today is in window")
	assert.True(t, isWithinAdvanceBookingWindow(day(30), now, 30), "window end is inclusive")
	assert.False(t, isWithinAdvanceBookingWindow(day(31), now, 30), "past window end")
	assert.False(t, isWithinAdvanceBookingWindow(day(-1), now, 30), "yesterday")
}

func TestExecute_ClassifiesSlots(t *testing.T) {
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC)

	cfg := &domain.ScheduleConfig{
		OpenTime:            "9:00 AM",
		CloseTime:           "11:00 AM",
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  30,
	}

	appointments := []*domain.Appointment{
		// Точное совпадение слота
		{ID: 1, Date: date, StartTime: "9:00 AM", DurationMinutes: 30, Status: domain.StatusConfirmed},
		// Часовая запись перекрывает 10:00 и 10:30
		{ID: 2, Date: date, StartTime: "10:00 AM", DurationMinutes: 60, Status: domain.StatusPending},
		// Отмененная запись слот не занимает
		{ID: 3, Date: date, StartTime: "9:30 AM", DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	uc := NewUseCase(
		&stubApptRepo{appointments: appointments},
		&stubConfigRepo{cfg: cfg},
		nopLogger{},
	).WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.True(t, resp.WithinWindow)

	statuses := make(map[types.TimeString]domain.SlotStatus)
	for _, s := range resp.Slots {
		statuses[s.Time] = s.Status
	}

	assert.Equal(t, domain.SlotBooked, statuses["9:00 AM"])
	assert.Equal(t, domain.SlotAvailable, statuses["9:30 AM"])
	assert.Equal(t, domain.SlotBooked, statuses["10:00 AM"])
	assert.Equal(t, domain.SlotBooked, statuses["10:30 AM"])

	assert.Len(t, resp.Available(), 1)
	assert.Len(t, resp.Booked(), 3)
}

func TestExecute_FullyBookedDayHasNoAvailableSlots(t *testing.T) {
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

	cfg := &domain.ScheduleConfig{
		OpenTime:            "9:00 AM",
		CloseTime:           "12:00 PM",
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  30,
	}

	grid, err := generateSlotGrid(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, grid)

	appointments := make([]*domain.Appointment, len(grid))
	for i, label := range grid {
		appointments[i] = &domain.Appointment{
			ID:              int64(i + 1),
			Date:            date,
			StartTime:       label,
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		}
	}

	uc := NewUseCase(
		&stubApptRepo{appointments: appointments},
		&stubConfigRepo{cfg: cfg},
		nopLogger{},
	).WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Available())
	assert.Len(t, resp.Booked(), len(grid))
}

func TestExecute_PastAndOutOfWindowSlotsUnavailable(t *testing.T) {
	now := time.Date(2026, 3, 16, 10, 10, 0, 0, time.UTC)
	today := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	cfg := &domain.ScheduleConfig{
		OpenTime:            "9:00 AM",
		CloseTime:           "12:00 PM",
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  7,
	}

	uc := NewUseCase(
		&stubApptRepo{},
		&stubConfigRepo{cfg: cfg},
		nopLogger{},
	).WithTimeProvider(fixedTime{now: now})

	t.Run("today's elapsed slots are unavailable", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{Date: today})
		require.NoError(t, err)

		statuses := make(map[types.TimeString]domain.SlotStatus)
		for _, s := range resp.Slots {
			statuses[s.Time] = s.Status
		}

		// 9:00-9:30 и 9:30-10:00 истекли; 10:00-10:30 еще идет - его конец в будущем
		assert.Equal(t, domain.SlotUnavailable, statuses["9:00 AM"])
		assert.Equal(t, domain.SlotUnavailable, statuses["9:30 AM"])
		assert.Equal(t, domain.SlotAvailable, statuses["10:00 AM"])
		assert.Equal(t, domain.SlotAvailable, statuses["10:30 AM"])
	})

	t.Run("date beyond window is entirely unavailable", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{Date: today.AddDate(0, 0, 8)})
		require.NoError(t, err)
		assert.False(t, resp.WithinWindow)
		for _, s := range resp.Slots {
			assert.Equal(t, domain.SlotUnavailable, s.Status)
		}
	})
}

func TestExecute_DefaultsWhenConfigMissing(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&stubApptRepo{},
		&stubConfigRepo{err: configRepo.ErrConfigNotFound},
		nopLogger{},
	).WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.True(t, resp.WithinWindow)

	// 9:00 AM - 5:00 PM с шагом 30 минут
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("9:00 AM"), resp.Slots[0].Time)
	assert.Equal(t, types.TimeString("4:30 PM"), resp.Slots[len(resp.Slots)-1].Time)
	assert.Len(t, resp.Slots, 16)
}
