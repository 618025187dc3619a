package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	PatientID    *int64           // ID пациента (опционально, приоритетный способ поиска)
	PatientPhone string           // Телефон пациента (fallback, если ID не указан или не найден)
	Date         time.Time        // Дата приема (без времени)
	StartTime    types.TimeString // Время начала слота (например, "10:30 AM")
	DurationMin  *int             // Длительность в минутах (опционально, по умолчанию 30)
	Type         string           // Тип приема
	Notes        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID               int64            // ID созданной записи
	PatientID        int64            // ID пациента
	PatientName      string           // Имя пациента (денормализовано)
	PatientPhone     string           // Телефон пациента
	PatientVisibleID *string          // Публичный идентификатор пациента
	Date             time.Time        // Дата приема
	StartTime        types.TimeString // Время начала
	DurationMinutes  int              // Длительность в минутах
	Type             string           // Тип приема
	Status           string           // Статус записи
	Notes            *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
