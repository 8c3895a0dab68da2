package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExamSlotRepository struct {
	pool *pgxpool.Pool
}

func NewExamSlotRepository(pool *pgxpool.Pool) *ExamSlotRepository {
	return &ExamSlotRepository{pool: pool}
}

// Create создаёт слот экзамена
func (r *ExamSlotRepository) Create(ctx context.Context, s *model.ExamSlot) error {
	query := `
		INSERT INTO exam_slots (id, exam_date, weekday, subject)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, s.ID, s.Date, s.Weekday, s.Subject).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create exam slot: %w", err)
	}

	return nil
}

// List возвращает все слоты по дате
func (r *ExamSlotRepository) List(ctx context.Context) ([]model.ExamSlot, error) {
	query := `
		SELECT id, exam_date, weekday, subject, created_at
		FROM exam_slots
		ORDER BY exam_date, subject
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list exam slots: %w", err)
	}
	defer rows.Close()

	var slots []model.ExamSlot
	for rows.Next() {
		var s model.ExamSlot
		err := rows.Scan(&s.ID, &s.Date, &s.Weekday, &s.Subject, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan exam slot: %w", err)
		}
		slots = append(slots, s)
	}

	return slots, rows.Err()
}
