package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	directory "github.com/m04kA/HMS-SchedulingService/internal/integrations/patientdirectory"
	"github.com/m04kA/HMS-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/HMS-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/HMS-SchedulingService/internal/usecase/swap_appointments"
	"github.com/m04kA/HMS-SchedulingService/pkg/ptr"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// memApptRepo репозиторий в памяти, обслуживающий все три use case сразу
type memApptRepo struct {
	appointments map[int64]*domain.Appointment
	nextID       int64
}

func (m *memApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	cp := *appt
	m.nextID++
	cp.ID = m.nextID
	m.appointments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if appt, ok := m.appointments[id]; ok {
		cp := *appt
		return &cp, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (m *memApptRepo) GetByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, appt := range m.appointments {
		if filter.Date != nil && !appt.Date.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		cp := *appt
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memApptRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, startTime types.TimeString) error {
	appt, ok := m.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	appt.Date = date
	appt.StartTime = startTime
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memConfigRepo struct{}

func (memConfigRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return domain.DefaultScheduleConfig(), nil
}

type memPatientClient struct {
	patients map[int64]*directory.Patient
}

func (m *memPatientClient) GetByID(_ context.Context, id int64) (*directory.Patient, error) {
	if p, ok := m.patients[id]; ok {
		return p, nil
	}
	return nil, directory.ErrPatientNotFound
}

func (m *memPatientClient) GetByPhone(_ context.Context, _ string) (*directory.Patient, error) {
	return nil, directory.ErrPatientNotFound
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сквозной сценарий регистратуры: две записи создаются, одна переносится,
// затем пациенты меняются слотами. После цепочки операций в хранилище ровно
// две записи и ровно два ожидаемых размещения (дата, время).
func TestSchedulingFlow_CreateRescheduleSwapRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	dateA := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	dateB := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	repo := &memApptRepo{appointments: make(map[int64]*domain.Appointment)}
	tx := passthroughTx{}
	clock := fixedTime{now: now}
	patients := &memPatientClient{patients: map[int64]*directory.Patient{
		42: {ID: 42, Name: "Anna Petrova", Phone: "+7 900 123-45-67"},
		43: {ID: 43, Name: "Boris Ivanov", Phone: "+7 900 765-43-21"},
	}}

	createUC := create_appointment.NewUseCase(repo, memConfigRepo{}, patients, tx, nopLogger{}).
		WithTimeProvider(clock)
	rescheduleUC := reschedule_appointment.NewUseCase(repo, tx, nopLogger{}).
		WithTimeProvider(clock)
	swapUC := swap_appointments.NewUseCase(repo, tx, nopLogger{}).
		WithTimeProvider(clock)

	ctx := context.Background()

	// Создание: Анна на 18-е 10:00, Борис на 20-е 14:00
	first, err := createUC.Execute(ctx, &create_appointment.Request{
		PatientID: ptr.Ptr(int64(42)),
		Date:      dateA,
		StartTime: "10:00 AM",
		Type:      "Consultation",
	})
	require.NoError(t, err)

	second, err := createUC.Execute(ctx, &create_appointment.Request{
		PatientID: ptr.Ptr(int64(43)),
		Date:      dateB,
		StartTime: "2:00 PM",
		Type:      "Follow-up",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// Перенос: Анна сдвигается на 11:00 того же дня
	moved, err := rescheduleUC.Execute(ctx, &reschedule_appointment.Request{
		ID:      first.ID,
		NewDate: dateA,
		NewTime: "11:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00 AM"), moved.StartTime)

	// Обмен: Анна и Борис меняются слотами
	_, err = swapUC.Execute(ctx, &swap_appointments.Request{
		ID1: first.ID,
		ID2: second.ID,
	})
	require.NoError(t, err)

	// Чтение назад: ровно две записи, ровно два ожидаемых размещения
	require.Len(t, repo.appointments, 2)

	anna, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, dateB, anna.Date)
	assert.Equal(t, types.TimeString("2:00 PM"), anna.StartTime)
	assert.Equal(t, domain.StatusPending, anna.Status)

	boris, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, dateA, boris.Date)
	assert.Equal(t, types.TimeString("11:00 AM"), boris.StartTime)
	assert.Equal(t, domain.StatusPending, boris.Status)

	// Синтетический слот обмена наружу не просачивается
	for _, appt := range repo.appointments {
		assert.False(t, strings.HasPrefix(string(appt.StartTime), "__swap__"))
	}

	// Освободившиеся слоты снова доступны для записи
	_, err = createUC.Execute(ctx, &create_appointment.Request{
		PatientID: ptr.Ptr(int64(42)),
		Date:      dateA,
		StartTime: "10:00 AM",
		Type:      "Consultation",
	})
	require.NoError(t, err)
	require.Len(t, repo.appointments, 3)
}
