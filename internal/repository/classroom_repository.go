package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClassroomRepository struct {
	pool *pgxpool.Pool
}

func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

// Create создаёт аудиторию
func (r *ClassroomRepository) Create(ctx context.Context, c *model.Classroom) error {
	query := `
		INSERT INTO classrooms (id, name, department, floor, room_number, capacity, facilities)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	facilities := c.Facilities
	if facilities == nil {
		facilities = []string{}
	}

	err := r.pool.QueryRow(
		ctx, query,
		c.ID,
		c.Name,
		c.Department,
		c.Floor,
		c.RoomNumber,
		c.Capacity,
		facilities,
	).Scan(&c.CreatedAt)

	if err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}

	return nil
}

// List возвращает все аудитории в порядке ID
func (r *ClassroomRepository) List(ctx context.Context) ([]model.Classroom, error) {
	query := `
		SELECT id, name, department, floor, room_number, capacity, facilities, created_at
		FROM classrooms
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []model.Classroom
	for rows.Next() {
		var c model.Classroom
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Department,
			&c.Floor,
			&c.RoomNumber,
			&c.Capacity,
			&c.Facilities,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan classroom: %w", err)
		}
		classrooms = append(classrooms, c)
	}

	return classrooms, rows.Err()
}

// UtilizationByDepartment считает аудитории каждой кафедры и сколько из них уже назначены
func (r *ClassroomRepository) UtilizationByDepartment(ctx context.Context) ([]model.DepartmentUtilization, error) {
	query := `
		SELECT c.department,
		       COUNT(*) FILTER (WHERE EXISTS (
		           SELECT 1 FROM allocations a WHERE a.classroom_id = c.id
		       )) AS used,
		       COUNT(*) AS total
		FROM classrooms c
		GROUP BY c.department
		ORDER BY c.department
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("classroom utilization: %w", err)
	}
	defer rows.Close()

	var out []model.DepartmentUtilization
	for rows.Next() {
		var u model.DepartmentUtilization
		if err := rows.Scan(&u.Department, &u.Used, &u.Total); err != nil {
			return nil, fmt.Errorf("scan classroom utilization: %w", err)
		}
		out = append(out, u)
	}

	return out, rows.Err()
}
