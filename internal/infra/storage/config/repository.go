package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// DBExecutor интерфейс исполнителя запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"open_time",
	"close_time",
	"slot_duration_minutes",
	"blackout_times",
	"slot_override",
	"advance_booking_days",
	"appointment_types",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации расписания.
// Конфигурация хранится единственной строкой; отсутствие строки означает,
// что действуют значения по умолчанию.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущую конфигурацию расписания
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime
	var openTime, closeTime string
	var blackout, override, apptTypes []string

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&openTime,
		&closeTime,
		&cfg.SlotDurationMinutes,
		pq.Array(&blackout),
		pq.Array(&override),
		&cfg.AdvanceBookingDays,
		pq.Array(&apptTypes),
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.OpenTime = types.TimeString(openTime)
	cfg.CloseTime = types.TimeString(closeTime)
	cfg.BlackoutTimes = toTimeStrings(blackout)
	cfg.SlotOverride = toTimeStrings(override)
	cfg.AppointmentTypes = apptTypes
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert сохраняет конфигурацию расписания, создавая строку при первом вызове
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"id",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"blackout_times",
			"slot_override",
			"advance_booking_days",
			"appointment_types",
		).
		Values(
			1,
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.SlotDurationMinutes,
			pq.Array(fromTimeStrings(cfg.BlackoutTimes)),
			pq.Array(fromTimeStrings(cfg.SlotOverride)),
			cfg.AdvanceBookingDays,
			pq.Array(cfg.AppointmentTypes),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			blackout_times = EXCLUDED.blackout_times,
			slot_override = EXCLUDED.slot_override,
			advance_booking_days = EXCLUDED.advance_booking_days,
			appointment_types = EXCLUDED.appointment_types,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

func toTimeStrings(values []string) []types.TimeString {
	if len(values) == 0 {
		return nil
	}
	out := make([]types.TimeString, len(values))
	for i, v := range values {
		out[i] = types.TimeString(v)
	}
	return out
}

func fromTimeStrings(values []types.TimeString) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
