package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmergencyRepository struct {
	pool *pgxpool.Pool
}

func NewEmergencyRepository(pool *pgxpool.Pool) *EmergencyRepository {
	return &EmergencyRepository{pool: pool}
}

const emergencyColumns = `
	id, professor_id, professor_name, department, designation, phone, requested_weekday,
	requested_date, exam_subject, slot_id, reason, status, created_at`

// Create сохраняет запись emergency pool через q (пул или транзакция)
func (r *EmergencyRepository) Create(ctx context.Context, q base.Querier, e *model.EmergencyPoolEntry) error {
	query := `
		INSERT INTO emergency_pool (` + emergencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := q.Exec(
		ctx, query,
		e.ID,
		e.ProfessorID,
		e.ProfessorName,
		e.Department,
		e.Designation,
		e.Phone,
		e.RequestedWeekday,
		e.RequestedDate,
		e.ExamSubject,
		e.SlotID,
		e.Reason,
		e.Status,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create emergency pool entry: %w", err)
	}

	return nil
}

// List возвращает все записи emergency pool
func (r *EmergencyRepository) List(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	query := `SELECT ` + emergencyColumns + ` FROM emergency_pool ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list emergency pool: %w", err)
	}
	return collectEntries(rows)
}

// ListWaiting возвращает записи, ожидающие администратора, старые первыми
func (r *EmergencyRepository) ListWaiting(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	query := `SELECT ` + emergencyColumns + ` FROM emergency_pool WHERE status = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, model.EmergencyStatusWaiting)
	if err != nil {
		return nil, fmt.Errorf("list waiting emergency pool: %w", err)
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]model.EmergencyPoolEntry, error) {
	defer rows.Close()

	var entries []model.EmergencyPoolEntry
	for rows.Next() {
		var e model.EmergencyPoolEntry
		err := rows.Scan(
			&e.ID,
			&e.ProfessorID,
			&e.ProfessorName,
			&e.Department,
			&e.Designation,
			&e.Phone,
			&e.RequestedWeekday,
			&e.RequestedDate,
			&e.ExamSubject,
			&e.SlotID,
			&e.Reason,
			&e.Status,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan emergency pool entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
