package swap_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
	swapAppointments "github.com/m04kA/HMS-SchedulingService/internal/usecase/swap_appointments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "необходимо указать ID обеих записей"
	msgNotFound           = "одна из записей не найдена"
	msgNotSwappable       = "запись в текущем статусе нельзя обменять"
)

type Handler struct {
	useCase SwapAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase SwapAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/swap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/swap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, swapAppointments.ErrMissingFields):
			h.logger.Warn("POST /appointments/swap - Missing IDs: first=%d, second=%d", req.FirstID, req.SecondID)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, swapAppointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/swap - Appointment not found: first=%d, second=%d", req.FirstID, req.SecondID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, swapAppointments.ErrNotSwappable):
			h.logger.Warn("POST /appointments/swap - Not swappable: first=%d, second=%d", req.FirstID, req.SecondID)
			handlers.RespondBadRequest(w, msgNotSwappable)

		default:
			h.logger.Error("POST /appointments/swap - Failed to swap: first=%d, second=%d, error=%v",
				req.FirstID, req.SecondID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/swap - Appointments swapped: first=%d, second=%d", req.FirstID, req.SecondID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
