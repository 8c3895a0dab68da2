package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FactStore реализация allocation.FactStore поверх Postgres.
// Записи выполняются в транзакции под advisory-блокировками тех же ключей,
// что и в процессе, а уникальные индексы превращаются в ErrWriteConflict.
type FactStore struct {
	db          *base.Repository
	classrooms  *ClassroomRepository
	slots       *ExamSlotRepository
	allocations *AllocationRepository
	timetable   *TimetableRepository
	emergency   *EmergencyRepository
}

var _ allocation.FactStore = (*FactStore)(nil)

func NewFactStore(
	pool *pgxpool.Pool,
	classrooms *ClassroomRepository,
	slots *ExamSlotRepository,
	allocations *AllocationRepository,
	timetable *TimetableRepository,
	emergency *EmergencyRepository,
) *FactStore {
	return &FactStore{
		db:          base.NewRepository(pool),
		classrooms:  classrooms,
		slots:       slots,
		allocations: allocations,
		timetable:   timetable,
		emergency:   emergency,
	}
}

func (s *FactStore) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	return s.classrooms.List(ctx)
}

func (s *FactStore) ListExamSlots(ctx context.Context) ([]model.ExamSlot, error) {
	return s.slots.List(ctx)
}

func (s *FactStore) ListAllocations(ctx context.Context) ([]model.Allocation, error) {
	return s.allocations.List(ctx)
}

func (s *FactStore) ListAllocationsForProfessor(ctx context.Context, professorID string) ([]model.Allocation, error) {
	return s.allocations.ListByProfessor(ctx, professorID)
}

func (s *FactStore) ListTimetable(ctx context.Context, professorID string) ([]model.TimetableEntry, error) {
	return s.timetable.ListByProfessor(ctx, professorID)
}

func (s *FactStore) ListEmergencyPool(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	return s.emergency.List(ctx)
}

// CreateAllocation сохраняет назначение под блокировками преподавателя и дня
func (s *FactStore) CreateAllocation(ctx context.Context, a *model.Allocation) error {
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockKeys(ctx, tx, allocation.ProfessorKey(a.ProfessorID), allocation.WeekdayKey(a.Weekday)); err != nil {
			return err
		}
		return s.allocations.Create(ctx, tx, a)
	})
	return conflictOrErr("create allocation", err)
}

// CreateEmergencyPoolEntry сохраняет запись под блокировкой преподавателя
func (s *FactStore) CreateEmergencyPoolEntry(ctx context.Context, e *model.EmergencyPoolEntry) error {
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockKeys(ctx, tx, allocation.ProfessorKey(e.ProfessorID)); err != nil {
			return err
		}
		return s.emergency.Create(ctx, tx, e)
	})
	return conflictOrErr("create emergency pool entry", err)
}

// conflictOrErr переводит нарушение уникального индекса в ErrWriteConflict,
// чтобы движок перечитал факты и пересчитал решение
func conflictOrErr(op string, err error) error {
	if base.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, allocation.ErrWriteConflict)
	}
	return err
}

func lockKeys(ctx context.Context, tx pgx.Tx, keys ...string) error {
	for _, key := range keys {
		if err := base.AdvisoryLock(ctx, tx, key); err != nil {
			return fmt.Errorf("advisory lock %s: %w", key, err)
		}
	}
	return nil
}
