package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/config"
	directory "github.com/m04kA/HMS-SchedulingService/internal/integrations/patientdirectory"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	apptRepo      AppointmentRepository
	configRepo    ConfigRepository
	patientClient PatientDirectoryClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	configRepo ConfigRepository,
	patientClient PatientDirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		configRepo:    configRepo,
		patientClient: patientClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи.
// Гонка за слот разрешается уникальным индексом на (date, time) в БД:
// из двух конкурентных запросов ровно один получает ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%v phone=%s date=%s time=%s type=%s",
		req.PatientID, req.PatientPhone, req.Date.Format(domain.DateFormat), req.StartTime, req.Type)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем пациента: сначала по ID, затем fallback по телефону
	patient, err := uc.resolvePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Вычисляем занятый интервал и проверяем, что он не истек.
	// Запись допустима, пока конец интервала строго в будущем.
	duration := domain.DefaultDurationMinutes
	if req.DurationMin != nil {
		duration = *req.DurationMin
	}

	interval, err := domain.NewInterval(req.Date, req.StartTime, duration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unparseable start time %q: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	if interval.HasElapsed(now) {
		uc.logger.Warn("CreateAppointment: slot %s %s has already elapsed",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrPastSlot
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию расписания
		cfg, err := uc.configRepo.Get(txCtx)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateAppointment: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if cfg == nil {
			cfg = domain.DefaultScheduleConfig()
		}

		// 5.2. Проверяем тип приема по настроенному списку
		if err := validateType(cfg, req.Type); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 5.3. Проверяем пересечение с активными записями на эту дату.
		// Занятость определяется пересечением интервалов, а не только
		// совпадением метки: часовая запись закрывает и соседний слот.
		existing, err := uc.apptRepo.GetByFilter(txCtx, domain.AppointmentsFilter{Date: &req.Date})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments for %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if conflicting := domain.FindConflict(interval, existing, 0); conflicting != nil {
			uc.logger.Warn("CreateAppointment: slot %s %s overlaps appointment id=%d (%s)",
				req.Date.Format(domain.DateFormat), req.StartTime, conflicting.ID, conflicting.PatientName)
			return ErrSlotTaken
		}

		// 5.4. Создаем запись; гонку за слот добивает уникальный индекс БД
		appt := &domain.Appointment{
			PatientID: patient.ID,
			// Денормализация данных пациента
			PatientName:      patient.Name,
			PatientPhone:     patient.Phone,
			PatientVisibleID: patient.VisibleID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  duration,
			Type:             req.Type,
			Status:           domain.StatusPending,
			Notes:            req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s %s already booked",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:               result.ID,
		PatientID:        result.PatientID,
		PatientName:      result.PatientName,
		PatientPhone:     result.PatientPhone,
		PatientVisibleID: result.PatientVisibleID,
		Date:             result.Date,
		StartTime:        result.StartTime,
		DurationMinutes:  result.DurationMinutes,
		Type:             result.Type,
		Status:           string(result.Status),
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// resolvePatient разрешает пациента по ID с fallback-поиском по телефону
func (uc *UseCase) resolvePatient(ctx context.Context, req *Request) (*directory.Patient, error) {
	if req.PatientID != nil {
		patient, err := uc.patientClient.GetByID(ctx, *req.PatientID)
		if err == nil {
			return patient, nil
		}
		if !errors.Is(err, directory.ErrPatientNotFound) {
			uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", *req.PatientID, err)
			return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
		}
		// ID не нашелся - пробуем по телефону
	}

	if req.PatientPhone == "" {
		uc.logger.Warn("CreateAppointment: patient id=%v not found and no phone to fall back to", req.PatientID)
		return nil, ErrPatientNotFound
	}

	patient, err := uc.patientClient.GetByPhone(ctx, req.PatientPhone)
	if err != nil {
		if errors.Is(err, directory.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient not found by phone=%s", req.PatientPhone)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient by phone=%s: %v", req.PatientPhone, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	return patient, nil
}
