package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AllocationRepository struct {
	pool *pgxpool.Pool
}

func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

const allocationColumns = `
	id, professor_id, professor_name, professor_department, slot_id, exam_date, weekday, subject,
	classroom_id, classroom_name, classroom_department, floor, room_number, status, created_at`

// Create сохраняет назначение через q (пул или транзакция)
func (r *AllocationRepository) Create(ctx context.Context, q base.Querier, a *model.Allocation) error {
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := q.Exec(
		ctx, query,
		a.ID,
		a.ProfessorID,
		a.ProfessorName,
		a.ProfessorDepartment,
		a.SlotID,
		a.Date,
		a.Weekday,
		a.Subject,
		a.ClassroomID,
		a.ClassroomName,
		a.ClassroomDepartment,
		a.Floor,
		a.RoomNumber,
		a.Status,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create allocation: %w", err)
	}

	return nil
}

// List возвращает все назначения
func (r *AllocationRepository) List(ctx context.Context) ([]model.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return collectAllocations(rows)
}

// ListByProfessor возвращает назначения преподавателя
func (r *AllocationRepository) ListByProfessor(ctx context.Context, professorID string) ([]model.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE professor_id = $1 ORDER BY exam_date`

	rows, err := r.pool.Query(ctx, query, professorID)
	if err != nil {
		return nil, fmt.Errorf("list allocations by professor: %w", err)
	}
	return collectAllocations(rows)
}

func collectAllocations(rows pgx.Rows) ([]model.Allocation, error) {
	defer rows.Close()

	var allocations []model.Allocation
	for rows.Next() {
		var a model.Allocation
		err := rows.Scan(
			&a.ID,
			&a.ProfessorID,
			&a.ProfessorName,
			&a.ProfessorDepartment,
			&a.SlotID,
			&a.Date,
			&a.Weekday,
			&a.Subject,
			&a.ClassroomID,
			&a.ClassroomName,
			&a.ClassroomDepartment,
			&a.Floor,
			&a.RoomNumber,
			&a.Status,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}
