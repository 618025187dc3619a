package swap_appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

type scheduleUpdate struct {
	id   int64
	date time.Time
	time types.TimeString
}

// memApptRepo репозиторий в памяти, применяющий изменения только при коммите
type memApptRepo struct {
	appointments map[int64]*domain.Appointment

	pending []scheduleUpdate
	failOn  int // на каком по счету UpdateSchedule падать (0 - никогда)
	calls   int
}

func (m *memApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if appt, ok := m.appointments[id]; ok {
		cp := *appt
		return &cp, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (m *memApptRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, startTime types.TimeString) error {
	m.calls++
	if m.failOn != 0 && m.calls == m.failOn {
		return apptRepo.ErrExecQuery
	}
	m.pending = append(m.pending, scheduleUpdate{id: id, date: date, time: startTime})
	return nil
}

func (m *memApptRepo) commit() {
	for _, u := range m.pending {
		appt := m.appointments[u.id]
		appt.Date = u.date
		appt.StartTime = u.time
	}
	m.pending = nil
}

// txManager имитирует транзакционность: изменения видны только при успехе fn
type txManager struct {
	repo *memApptRepo
}

func (t txManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		t.repo.pending = nil
		return err
	}
	t.repo.commit()
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow = time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	dateA   = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	dateB   = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
)

func newRepo() *memApptRepo {
	return &memApptRepo{
		appointments: map[int64]*domain.Appointment{
			1: {ID: 1, PatientName: "Anna Petrova", Date: dateA, StartTime: "10:00 AM", DurationMinutes: 30, Status: domain.StatusConfirmed},
			2: {ID: 2, PatientName: "Boris Ivanov", Date: dateB, StartTime: "2:00 PM", DurationMinutes: 30, Status: domain.StatusPending},
		},
	}
}

func newTestUseCase(repo *memApptRepo) *UseCase {
	return NewUseCase(repo, txManager{repo: repo}, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
}

func TestExecute_SwapsSlots(t *testing.T) {
	repo := newRepo()
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{ID1: 1, ID2: 2})
	require.NoError(t, err)

	// Ответ отражает итоговые размещения
	assert.Equal(t, int64(1), resp.First.ID)
	assert.Equal(t, dateB, resp.First.Date)
	assert.Equal(t, types.TimeString("2:00 PM"), resp.First.StartTime)
	assert.Equal(t, int64(2), resp.Second.ID)
	assert.Equal(t, dateA, resp.Second.Date)
	assert.Equal(t, types.TimeString("10:00 AM"), resp.Second.StartTime)

	// Состояние хранилища совпадает с ответом
	assert.Equal(t, dateB, repo.appointments[1].Date)
	assert.Equal(t, types.TimeString("2:00 PM"), repo.appointments[1].StartTime)
	assert.Equal(t, dateA, repo.appointments[2].Date)
	assert.Equal(t, types.TimeString("10:00 AM"), repo.appointments[2].StartTime)

	// Трехшаговый протокол: сначала уход на синтетический слот
	assert.Equal(t, 3, repo.calls)
}

func TestExecute_SwapIsInvolution(t *testing.T) {
	repo := newRepo()
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{ID1: 1, ID2: 2})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), &Request{ID1: 1, ID2: 2})
	require.NoError(t, err)

	// Двойной обмен возвращает исходные размещения
	assert.Equal(t, dateA, repo.appointments[1].Date)
	assert.Equal(t, types.TimeString("10:00 AM"), repo.appointments[1].StartTime)
	assert.Equal(t, dateB, repo.appointments[2].Date)
	assert.Equal(t, types.TimeString("2:00 PM"), repo.appointments[2].StartTime)
}

func TestExecute_MissingIDs(t *testing.T) {
	uc := newTestUseCase(newRepo())

	_, err := uc.Execute(context.Background(), &Request{ID1: 1})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = uc.Execute(context.Background(), &Request{ID2: 2})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	uc := newTestUseCase(newRepo())

	_, err := uc.Execute(context.Background(), &Request{ID1: 1, ID2: 99})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Contains(t, err.Error(), "id=99")
}

func TestExecute_BlockedStatuses(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newRepo()
			repo.appointments[2].Status = status
			uc := newTestUseCase(repo)

			_, err := uc.Execute(context.Background(), &Request{ID1: 1, ID2: 2})
			assert.ErrorIs(t, err, ErrNotSwappable)

			// Размещения не изменились
			assert.Equal(t, dateA, repo.appointments[1].Date)
			assert.Equal(t, dateB, repo.appointments[2].Date)
		})
	}
}

func TestExecute_AbortedSwapLeavesOriginalPlacements(t *testing.T) {
	// Падение на каждом из трех шагов не должно оставлять видимых изменений,
	// в частности запись не может остаться на синтетическом слоте
	for failStep := 1; failStep <= 3; failStep++ {
		repo := newRepo()
		repo.failOn = failStep
		uc := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), &Request{ID1: 1, ID2: 2})
		require.ErrorIs(t, err, ErrInternal, "fail on step %d", failStep)

		assert.Equal(t, dateA, repo.appointments[1].Date, "fail on step %d", failStep)
		assert.Equal(t, types.TimeString("10:00 AM"), repo.appointments[1].StartTime, "fail on step %d", failStep)
		assert.Equal(t, dateB, repo.appointments[2].Date, "fail on step %d", failStep)
		assert.Equal(t, types.TimeString("2:00 PM"), repo.appointments[2].StartTime, "fail on step %d", failStep)

		assert.False(t, strings.HasPrefix(string(repo.appointments[1].StartTime), placeholderPrefix))
	}
}
