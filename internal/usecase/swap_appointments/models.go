package swap_appointments

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на обмен слотами двух записей
type Request struct {
	ID1 int64 // ID первой записи
	ID2 int64 // ID второй записи
}

// SwappedAppointment итоговое размещение одной из записей после обмена
type SwappedAppointment struct {
	ID          int64            // ID записи
	PatientName string           // Имя пациента
	Date        time.Time        // Дата приема после обмена
	StartTime   types.TimeString // Время начала после обмена
}

// Response модель ответа с обеими записями после обмена
type Response struct {
	First  SwappedAppointment
	Second SwappedAppointment
}
