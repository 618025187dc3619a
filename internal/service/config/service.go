package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/HMS-SchedulingService/internal/service/config/models"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get возвращает текущую конфигурацию расписания
// Если конфигурация еще не сохранена, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("Get: no stored config, using defaults")
			return models.FromDomainConfig(domain.DefaultScheduleConfig()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update применяет частичное обновление конфигурации и сохраняет результат
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating schedule config")

	current, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			current = domain.DefaultScheduleConfig()
		} else {
			s.logger.Error("Update: repository error: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	merged, err := s.merge(current, req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, merged)
	if err != nil {
		s.logger.Error("Update: repository error on upsert: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: schedule config updated")
	return models.FromDomainConfig(saved), nil
}

// merge накладывает переданные поля на текущую конфигурацию с валидацией
func (s *Service) merge(current *domain.ScheduleConfig, req *models.UpdateConfigRequest) (*domain.ScheduleConfig, error) {
	cfg := *current

	if req.OpenTime != nil {
		ts, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid open time %q", ErrInvalidConfig, *req.OpenTime)
		}
		cfg.OpenTime = ts
	}
	if req.CloseTime != nil {
		ts, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid close time %q", ErrInvalidConfig, *req.CloseTime)
		}
		cfg.CloseTime = ts
	}
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		return nil, fmt.Errorf("%w: open time must be before close time", ErrInvalidConfig)
	}

	if req.SlotDurationMinutes != nil {
		d := *req.SlotDurationMinutes
		if d < domain.MinSlotDurationMinutes || d > domain.MaxSlotDurationMinutes {
			return nil, fmt.Errorf("%w: slot duration must be between %d and %d minutes",
				ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
		cfg.SlotDurationMinutes = d
	}

	if req.AdvanceBookingDays != nil {
		d := *req.AdvanceBookingDays
		if d < domain.MinAdvanceBookingDays || d > domain.MaxAdvanceBookingDays {
			return nil, fmt.Errorf("%w: advance booking window must be between %d and %d days",
				ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
		}
		cfg.AdvanceBookingDays = d
	}

	if req.BlackoutTimes != nil {
		times, err := s.parseTimes(req.BlackoutTimes)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid blackout time: %v", ErrInvalidConfig, err)
		}
		cfg.BlackoutTimes = times
	}

	if req.SlotOverride != nil {
		times, err := s.parseTimes(req.SlotOverride)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slot override: %v", ErrInvalidConfig, err)
		}
		cfg.SlotOverride = times
	}

	if req.AppointmentTypes != nil {
		if len(req.AppointmentTypes) == 0 {
			return nil, fmt.Errorf("%w: appointment types cannot be empty", ErrInvalidConfig)
		}
		for _, t := range req.AppointmentTypes {
			if t == "" {
				return nil, fmt.Errorf("%w: appointment type cannot be blank", ErrInvalidConfig)
			}
		}
		cfg.AppointmentTypes = req.AppointmentTypes
	}

	return &cfg, nil
}

func (s *Service) parseTimes(values []string) ([]types.TimeString, error) {
	out := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		ts, err := types.NewTimeStringFromString(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}
