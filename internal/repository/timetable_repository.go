package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TimetableRepository struct {
	pool *pgxpool.Pool
}

func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

// Create добавляет занятие в расписание преподавателя
func (r *TimetableRepository) Create(ctx context.Context, e *model.TimetableEntry) error {
	query := `
		INSERT INTO timetable_entries (id, professor_id, weekday, subject, start_time, end_time, semester)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		e.ID,
		e.ProfessorID,
		e.Weekday,
		e.Subject,
		e.StartTime,
		e.EndTime,
		e.Semester,
	).Scan(&e.CreatedAt)

	if err != nil {
		return fmt.Errorf("create timetable entry: %w", err)
	}

	return nil
}

// ListByProfessor получает расписание преподавателя
func (r *TimetableRepository) ListByProfessor(ctx context.Context, professorID string) ([]model.TimetableEntry, error) {
	query := `
		SELECT id, professor_id, weekday, subject, start_time, end_time, semester, created_at
		FROM timetable_entries
		WHERE professor_id = $1
		ORDER BY weekday, start_time
	`

	rows, err := r.pool.Query(ctx, query, professorID)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	defer rows.Close()

	var entries []model.TimetableEntry
	for rows.Next() {
		var e model.TimetableEntry
		err := rows.Scan(
			&e.ID,
			&e.ProfessorID,
			&e.Weekday,
			&e.Subject,
			&e.StartTime,
			&e.EndTime,
			&e.Semester,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan timetable entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
