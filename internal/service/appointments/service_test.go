package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/HMS-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/HMS-SchedulingService/pkg/ptr"
)

type stubRepo struct {
	appointments map[int64]*domain.Appointment
	filtered     []*domain.Appointment

	lastFilter domain.AppointmentsFilter
	lastStatus domain.AppointmentStatus
	deletedID  int64
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if appt, ok := s.appointments[id]; ok {
		return appt, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (s *stubRepo) GetByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	s.lastFilter = filter
	return s.filtered, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, _ domain.AppointmentUpdate) error {
	if _, ok := s.appointments[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	return nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := s.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	s.lastStatus = status
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.appointments[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	s.deletedID = id
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

func makeAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		PatientID:       42,
		PatientName:     "Anna Petrova",
		Date:            testDate,
		StartTime:       "10:00 AM",
		DurationMinutes: 30,
		Type:            "Consultation",
		Status:          status,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &stubRepo{appointments: map[int64]*domain.Appointment{
		1: makeAppointment(1, domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2026-03-18", resp.Date)
		assert.Equal(t, "10:00 AM", resp.Time)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_List(t *testing.T) {
	repo := &stubRepo{filtered: []*domain.Appointment{
		makeAppointment(1, domain.StatusConfirmed),
		makeAppointment(2, domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("passes filter through", func(t *testing.T) {
		status := "Confirmed"
		resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
			Date:   &testDate,
			Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)

		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
		assert.Equal(t, testDate, *repo.lastFilter.Date)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		status := "Scheduled"
		_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("allowed transition", func(t *testing.T) {
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusPending),
		}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "Confirmed", resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.lastStatus)
	})

	t.Run("forbidden transition", func(t *testing.T) {
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusCompleted),
		}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Pending"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusPending),
		}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Scheduled"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("cancels pending appointment", func(t *testing.T) {
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusPending),
		}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Cancel(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusCompleted),
		}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("in progress follows the transition table", func(t *testing.T) {
		// PATCH статуса и отмена обязаны решаться одной политикой:
		// начатый прием можно только завершить
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusInProgress),
		}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "Cancelled"})
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		repo := &stubRepo{appointments: map[int64]*domain.Appointment{
			1: makeAppointment(1, domain.StatusCancelled),
		}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestService_Update(t *testing.T) {
	repo := &stubRepo{appointments: map[int64]*domain.Appointment{
		1: makeAppointment(1, domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("invalid time format", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 1, &models.UpdateAppointmentRequest{
			StartTime: ptr.Ptr("25:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 99, &models.UpdateAppointmentRequest{
			Notes: ptr.Ptr("updated"),
		})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	repo := &stubRepo{appointments: map[int64]*domain.Appointment{
		1: makeAppointment(1, domain.StatusCancelled),
	}}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, int64(1), repo.deletedID)

	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrAppointmentNotFound)
}
