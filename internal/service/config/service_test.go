package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/HMS-SchedulingService/internal/service/config/models"
	"github.com/m04kA/HMS-SchedulingService/pkg/ptr"
)

type stubRepo struct {
	cfg    *domain.ScheduleConfig
	getErr error

	upserted *domain.ScheduleConfig
}

func (s *stubRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cfg, nil
}

func (s *stubRepo) Upsert(_ context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	s.upserted = cfg
	return cfg, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Get(t *testing.T) {
	t.Run("stored config", func(t *testing.T) {
		repo := &stubRepo{cfg: &domain.ScheduleConfig{
			OpenTime:            "8:00 AM",
			CloseTime:           "4:00 PM",
			SlotDurationMinutes: 20,
			AdvanceBookingDays:  14,
			AppointmentTypes:    []string{"Consultation"},
		}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "8:00 AM", resp.OpenTime)
		assert.Equal(t, 20, resp.SlotDurationMinutes)
	})

	t.Run("defaults when nothing stored", func(t *testing.T) {
		repo := &stubRepo{getErr: configRepo.ErrConfigNotFound}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "9:00 AM", resp.OpenTime)
		assert.Equal(t, "5:00 PM", resp.CloseTime)
		assert.Equal(t, domain.DefaultSlotDuration, resp.SlotDurationMinutes)
		assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	})
}

func TestService_Update(t *testing.T) {
	base := func() *stubRepo {
		return &stubRepo{cfg: domain.DefaultScheduleConfig()}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := base()
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
			SlotDurationMinutes: ptr.Ptr(15),
		})
		require.NoError(t, err)
		assert.Equal(t, 15, resp.SlotDurationMinutes)
		assert.Equal(t, "9:00 AM", resp.OpenTime)

		require.NotNil(t, repo.upserted)
		assert.Equal(t, 15, repo.upserted.SlotDurationMinutes)
	})

	t.Run("blackout and override times are parsed", func(t *testing.T) {
		repo := base()
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
			BlackoutTimes: []string{"12:00 PM", "12:30 PM"},
			SlotOverride:  []string{"8:00 AM", "6:00 PM"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"12:00 PM", "12:30 PM"}, resp.BlackoutTimes)
		assert.Equal(t, []string{"8:00 AM", "6:00 PM"}, resp.SlotOverride)
	})

	tests := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{
			name: "invalid open time",
			req:  &models.UpdateConfigRequest{OpenTime: ptr.Ptr("25:00")},
		},
		{
			name: "open not before close",
			req: &models.UpdateConfigRequest{
				OpenTime:  ptr.Ptr("6:00 PM"),
				CloseTime: ptr.Ptr("9:00 AM"),
			},
		},
		{
			name: "slot duration too small",
			req:  &models.UpdateConfigRequest{SlotDurationMinutes: ptr.Ptr(1)},
		},
		{
			name: "slot duration too large",
			req:  &models.UpdateConfigRequest{SlotDurationMinutes: ptr.Ptr(500)},
		},
		{
			name: "window too large",
			req:  &models.UpdateConfigRequest{AdvanceBookingDays: ptr.Ptr(1000)},
		},
		{
			name: "bad blackout time",
			req:  &models.UpdateConfigRequest{BlackoutTimes: []string{"lunch"}},
		},
		{
			name: "blank appointment type",
			req:  &models.UpdateConfigRequest{AppointmentTypes: []string{"Consultation", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := base()
			svc := NewService(repo, nopLogger{})

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, repo.upserted)
		})
	}
}
