package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/config"
)

// UseCase use case для получения сетки слотов на дату
type UseCase struct {
	apptRepo     AppointmentRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		configRepo:   configRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает сетку слотов на дату с классификацией каждого слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию расписания
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
	}

	// 4. Генерируем сетку слотов
	grid, err := generateSlotGrid(cfg)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	withinWindow := isWithinAdvanceBookingWindow(req.Date, now, cfg.AdvanceBookingDays)

	// 5. Получаем активные записи на эту дату
	appointments, err := uc.apptRepo.GetByFilter(ctx, domain.AppointmentsFilter{Date: &req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Классифицируем каждый слот сетки
	slots := classifySlots(grid, cfg, req.Date, now, appointments, withinWindow)

	uc.logger.Info("GetAvailableSlots: %d slots for date=%s (withinWindow=%t)",
		len(slots), req.Date.Format(domain.DateFormat), withinWindow)

	return &Response{
		Date:         req.Date,
		Slots:        slots,
		WithinWindow: withinWindow,
	}, nil
}

// IsWithinAdvanceBookingWindow независимый предикат окна предварительной
// записи: today <= date <= today + advanceBookingDays.
func (uc *UseCase) IsWithinAdvanceBookingWindow(ctx context.Context, date time.Time) (bool, error) {
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		return false, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
	}

	return isWithinAdvanceBookingWindow(date, uc.timeProvider.Now(), cfg.AdvanceBookingDays), nil
}
