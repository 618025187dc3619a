package swap_appointments

import (
	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	swapAppointments "github.com/m04kA/HMS-SchedulingService/internal/usecase/swap_appointments"
)

// SwapRequest HTTP request model
type SwapRequest struct {
	FirstID  int64 `json:"firstId"`
	SecondID int64 `json:"secondId"`
}

// SwappedAppointment итоговое размещение одной записи после обмена
type SwappedAppointment struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// SwapResponse HTTP response model
type SwapResponse struct {
	First  SwappedAppointment `json:"first"`
	Second SwappedAppointment `json:"second"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SwapRequest) ToUseCaseRequest() *swapAppointments.Request {
	return &swapAppointments.Request{
		ID1: r.FirstID,
		ID2: r.SecondID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *swapAppointments.Response) *SwapResponse {
	return &SwapResponse{
		First:  fromSwapped(resp.First),
		Second: fromSwapped(resp.Second),
	}
}

func fromSwapped(a swapAppointments.SwappedAppointment) SwappedAppointment {
	return SwappedAppointment{
		ID:          a.ID,
		PatientName: a.PatientName,
		Date:        a.Date.Format(domain.DateFormat),
		Time:        a.StartTime.String(),
	}
}
