package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
)

// UseCase use case для переноса записи на другой слот
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

// Execute выполняет перенос записи.
// Все проверки выполняются до единственной записи в БД; при любой ошибке
// валидации запись остается нетронутой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d to date=%s time=%s",
		req.ID, req.NewDate.Format(domain.DateFormat), req.NewTime)

	// 1. Новые дата и время обязательны
	if req.NewDate.IsZero() || req.NewTime.IsZero() {
		uc.logger.Warn("RescheduleAppointment: missing new date or time for id=%d", req.ID)
		return nil, ErrMissingFields
	}
	if err := req.NewTime.Validate(); err != nil {
		uc.logger.Warn("RescheduleAppointment: invalid new time %q: %v", req.NewTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Загружаем переносимую запись
		appt, err := uc.apptRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.ID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3. Статус не должен блокировать перенос
		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: id=%d blocked by status %q", req.ID, appt.Status)
			return fmt.Errorf("%w: status %q", ErrNotReschedulable, appt.Status)
		}

		// 4. Новый интервал не должен быть в прошлом.
		// Длительность берем из самой записи (fallback 30 минут для legacy).
		interval, err := domain.NewInterval(req.NewDate, req.NewTime, appt.EffectiveDuration())
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: unparseable new time %q: %v", req.NewTime, err)
			return fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
		if interval.HasElapsed(now) {
			uc.logger.Warn("RescheduleAppointment: target slot %s %s has already elapsed",
				req.NewDate.Format(domain.DateFormat), req.NewTime)
			return ErrPastSlot
		}

		// 5. Проверяем конфликт на новую дату, исключая саму запись.
		// Авторитетное определение конфликта - пересечение занятых интервалов.
		existing, err := uc.apptRepo.GetByFilter(txCtx, domain.AppointmentsFilter{Date: &req.NewDate})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments for %s: %v",
				req.NewDate.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if conflicting := domain.FindConflict(interval, existing, appt.ID); conflicting != nil {
			uc.logger.Warn("RescheduleAppointment: slot %s %s conflicts with appointment id=%d (%s)",
				req.NewDate.Format(domain.DateFormat), req.NewTime, conflicting.ID, conflicting.PatientName)
			return &ConflictError{
				PatientName: conflicting.PatientName,
				Date:        req.NewDate,
				Time:        req.NewTime,
			}
		}

		// 6. Применяем перенос одним запросом
		if err := uc.apptRepo.UpdateSchedule(txCtx, appt.ID, req.NewDate, req.NewTime); err != nil {
			// Конкурентная запись могла занять слот между проверкой и записью
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleAppointment: slot %s %s taken concurrently",
					req.NewDate.Format(domain.DateFormat), req.NewTime)
				return ErrSlotTaken
			}
			uc.logger.Error("RescheduleAppointment: failed to update schedule for id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		appt.Date = req.NewDate
		appt.StartTime = req.NewTime
		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled id=%d to %s %s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	return &Response{
		ID:              result.ID,
		PatientID:       result.PatientID,
		PatientName:     result.PatientName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.EffectiveDuration(),
		Status:          string(result.Status),
	}, nil
}
