package create_appointment

import (
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID == nil && req.PatientPhone == "" {
		return fmt.Errorf("%w: patientId or patientPhone is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	if req.DurationMin != nil && *req.DurationMin <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateType проверяет тип приема по настроенному списку.
// Пустой тип допустим для legacy-записей.
func validateType(cfg *domain.ScheduleConfig, apptType string) error {
	if apptType == "" {
		return nil
	}
	if len(cfg.AppointmentTypes) == 0 {
		return nil
	}
	if !cfg.HasAppointmentType(apptType) {
		return fmt.Errorf("%w: %q", ErrUnknownType, apptType)
	}
	return nil
}
