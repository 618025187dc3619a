package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/HMS-SchedulingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и h:MM AM/PM"
	msgMissingFields        = "необходимо указать новую дату и время"
	msgNotFound             = "запись не найдена"
	msgNotReschedulable     = "запись в текущем статусе нельзя перенести"
	msgPastSlot             = "нельзя перенести запись на прошедшее время"
	msgSlotTaken            = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт слота содержит имя пациента занявшей его записи,
		// поэтому текст ошибки отдаем как есть
		var conflict *rescheduleAppointment.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Slot conflict: appointment_id=%d, holder=%s",
				appointmentID, conflict.PatientName)
			handlers.RespondError(w, http.StatusConflict, conflict.Error())

		case errors.Is(err, rescheduleAppointment.ErrSlotTaken):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Slot taken: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrNotReschedulable):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Not reschedulable: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNotReschedulable)

		case errors.Is(err, rescheduleAppointment.ErrMissingFields):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Missing fields: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, rescheduleAppointment.ErrPastSlot):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Slot in the past: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgPastSlot)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTime):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid time: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("PUT /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%d, new_date=%s, new_time=%s",
		appointmentID, req.NewDate, req.NewTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
