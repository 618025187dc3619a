package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
)

type contextKey string

const staffIDKey contextKey = "staffID"

// HeaderStaffID заголовок с ID сотрудника регистратуры
const HeaderStaffID = "X-Staff-ID"

// Auth проверяет наличие заголовка X-Staff-ID и кладет ID сотрудника в контекст.
// Выдачей и проверкой самих учетных записей занимается внешний сервис.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderStaffID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderStaffID)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный ID сотрудника")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID извлекает ID сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}
