package swap_appointments

import (
	"context"

	swapAppointments "github.com/m04kA/HMS-SchedulingService/internal/usecase/swap_appointments"
)

type SwapAppointmentsUseCase interface {
	Execute(ctx context.Context, req *swapAppointments.Request) (*swapAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
