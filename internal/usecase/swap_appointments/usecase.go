package swap_appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// placeholderPrefix префикс синтетического временного слота.
// Значение с таким префиксом не парсится как время и не совпадает ни с одной
// меткой сетки, поэтому не может конфликтовать с реальной записью.
const placeholderPrefix = "__swap__"

// UseCase use case для обмена слотами двух записей.
//
// Уникальный индекс (date, time) не позволяет выполнить прямой обмен двумя
// запросами: запись B, переезжая на слот записи A, столкнулась бы с еще не
// переехавшей A. Поэтому обмен идет в три шага внутри одной транзакции:
// A уходит на синтетический слот, B занимает слот A, A занимает слот B.
// При прерывании транзакции ни одно из трех изменений не видно снаружи и
// запись не может остаться на синтетическом слоте.
type UseCase struct {
	apptRepo     AppointmentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет обмен слотами двух записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SwapAppointments: id1=%d id2=%d", req.ID1, req.ID2)

	// 1. Оба ID обязательны
	if req.ID1 == 0 || req.ID2 == 0 {
		uc.logger.Warn("SwapAppointments: missing appointment IDs")
		return nil, ErrMissingFields
	}

	var first, second *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Загружаем обе записи
		a1, err := uc.getAppointment(txCtx, req.ID1)
		if err != nil {
			return err
		}
		a2, err := uc.getAppointment(txCtx, req.ID2)
		if err != nil {
			return err
		}

		// 3. Статусы не должны блокировать обмен
		if a1.IsBlocked() {
			uc.logger.Warn("SwapAppointments: id=%d blocked by status %q", a1.ID, a1.Status)
			return fmt.Errorf("%w: status %q", ErrNotSwappable, a1.Status)
		}
		if a2.IsBlocked() {
			uc.logger.Warn("SwapAppointments: id=%d blocked by status %q", a2.ID, a2.Status)
			return fmt.Errorf("%w: status %q", ErrNotSwappable, a2.Status)
		}

		// 4. Трехшаговый обмен через синтетический слот
		placeholder := types.TimeString(fmt.Sprintf("%s%d", placeholderPrefix, uc.timeProvider.Now().UnixNano()))

		// Шаг 1: A уходит на синтетический слот, освобождая свой
		if err := uc.apptRepo.UpdateSchedule(txCtx, a1.ID, a1.Date, placeholder); err != nil {
			uc.logger.Error("SwapAppointments: failed to park id=%d on placeholder: %v", a1.ID, err)
			return fmt.Errorf("%w: swap step 1 failed: %v", ErrInternal, err)
		}

		// Шаг 2: B занимает исходный слот A
		if err := uc.apptRepo.UpdateSchedule(txCtx, a2.ID, a1.Date, a1.StartTime); err != nil {
			uc.logger.Error("SwapAppointments: failed to move id=%d to (%s, %s): %v",
				a2.ID, a1.Date.Format(domain.DateFormat), a1.StartTime, err)
			return fmt.Errorf("%w: swap step 2 failed: %v", ErrInternal, err)
		}

		// Шаг 3: A занимает исходный слот B
		if err := uc.apptRepo.UpdateSchedule(txCtx, a1.ID, a2.Date, a2.StartTime); err != nil {
			uc.logger.Error("SwapAppointments: failed to move id=%d to (%s, %s): %v",
				a1.ID, a2.Date.Format(domain.DateFormat), a2.StartTime, err)
			return fmt.Errorf("%w: swap step 3 failed: %v", ErrInternal, err)
		}

		first = &domain.Appointment{
			ID:          a1.ID,
			PatientName: a1.PatientName,
			Date:        a2.Date,
			StartTime:   a2.StartTime,
		}
		second = &domain.Appointment{
			ID:          a2.ID,
			PatientName: a2.PatientName,
			Date:        a1.Date,
			StartTime:   a1.StartTime,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SwapAppointments: successfully swapped id=%d and id=%d", req.ID1, req.ID2)

	return &Response{
		First: SwappedAppointment{
			ID:          first.ID,
			PatientName: first.PatientName,
			Date:        first.Date,
			StartTime:   first.StartTime,
		},
		Second: SwappedAppointment{
			ID:          second.ID,
			PatientName: second.PatientName,
			Date:        second.Date,
			StartTime:   second.StartTime,
		},
	}, nil
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := uc.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("SwapAppointments: appointment id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, id)
		}
		uc.logger.Error("SwapAppointments: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	return appt, nil
}
