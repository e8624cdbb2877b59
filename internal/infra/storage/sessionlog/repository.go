package sessionlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository append-only журнал парковочных сессий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// RecordStart записывает открытие сессии (transition в occupied).
// Запись идемпотентна: повторная вставка того же session_id обновляет
// существующую запись (merge-семантика).
func (r *Repository) RecordStart(ctx context.Context, rec *domain.SessionRecord) error {
	query, args, err := psqlbuilder.Insert("parking_sessions").
		Columns(
			"session_id",
			"slot_index",
			"slot_number",
			"slot_type",
			"time_in",
			"time_out",
			"created_at",
			"updated_at",
		).
		Values(
			rec.SessionID,
			rec.SlotIndex,
			rec.SlotNumber,
			rec.SlotType,
			rec.TimeIn,
			rec.TimeOut,
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		Suffix("ON CONFLICT (session_id) DO UPDATE SET slot_index = EXCLUDED.slot_index, slot_number = EXCLUDED.slot_number, slot_type = EXCLUDED.slot_type, time_in = EXCLUDED.time_in, updated_at = EXCLUDED.updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordStart - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordStart - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RecordEnd закрывает сессию (transition в empty), проставляя time_out
func (r *Repository) RecordEnd(ctx context.Context, sessionID string, timeOutMs int64) error {
	query, args, err := psqlbuilder.Update("parking_sessions").
		Set("time_out", timeOutMs).
		Set("updated_at", timeOutMs).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordEnd - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordEnd - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RecordEnd - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// QuerySince получает все сессии с time_in >= cutoff, по возрастанию time_in.
// Используется движком прогнозирования для ограниченного lookback-окна.
func (r *Repository) QuerySince(ctx context.Context, cutoffMs int64) ([]*domain.SessionRecord, error) {
	query, args, err := psqlbuilder.Select(
		"session_id",
		"slot_index",
		"slot_number",
		"slot_type",
		"time_in",
		"time_out",
		"created_at",
		"updated_at",
	).
		From("parking_sessions").
		Where(squirrel.GtOrEq{"time_in": cutoffMs}).
		OrderBy("time_in ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: QuerySince - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QuerySince - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	sessions := make([]*domain.SessionRecord, 0)

	for rows.Next() {
		var rec domain.SessionRecord
		var timeOut sql.NullInt64

		err := rows.Scan(
			&rec.SessionID,
			&rec.SlotIndex,
			&rec.SlotNumber,
			&rec.SlotType,
			&rec.TimeIn,
			&timeOut,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}

		if timeOut.Valid {
			rec.TimeOut = &timeOut.Int64
		}

		sessions = append(sessions, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
