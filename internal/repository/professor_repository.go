package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfessorRepository struct {
	pool *pgxpool.Pool
}

func NewProfessorRepository(pool *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{pool: pool}
}

const professorColumns = `id, name, department, designation, phone, contact_channel, token, created_at`

// Create создаёт преподавателя
func (r *ProfessorRepository) Create(ctx context.Context, p *model.Professor) error {
	query := `
		INSERT INTO professors (id, name, department, designation, phone, contact_channel, token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		p.ID,
		p.Name,
		p.Department,
		p.Designation,
		p.Phone,
		p.ContactChannel,
		p.Token,
	).Scan(&p.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create professor: %w", ErrDuplicate)
		}
		return fmt.Errorf("create professor: %w", err)
	}

	return nil
}

// GetByID получает преподавателя по ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id string) (*model.Professor, error) {
	query := `SELECT ` + professorColumns + ` FROM professors WHERE id = $1`

	p, err := scanProfessor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get professor by id: %w", err)
	}

	return p, nil
}

// GetByContactChannel получает преподавателя по чату Telegram
func (r *ProfessorRepository) GetByContactChannel(ctx context.Context, channel string) (*model.Professor, error) {
	query := `SELECT ` + professorColumns + ` FROM professors WHERE contact_channel = $1`

	p, err := scanProfessor(r.pool.QueryRow(ctx, query, channel))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get professor by contact channel: %w", err)
	}

	return p, nil
}

// List возвращает всех преподавателей
func (r *ProfessorRepository) List(ctx context.Context) ([]model.Professor, error) {
	query := `SELECT ` + professorColumns + ` FROM professors ORDER BY department, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	defer rows.Close()

	var professors []model.Professor
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan professor: %w", err)
		}
		professors = append(professors, *p)
	}

	return professors, rows.Err()
}

func scanProfessor(row pgx.Row) (*model.Professor, error) {
	var p model.Professor
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Department,
		&p.Designation,
		&p.Phone,
		&p.ContactChannel,
		&p.Token,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
