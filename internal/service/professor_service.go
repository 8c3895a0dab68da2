package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AllocationStore чтение назначений, то же хранилище фактов, что и у движка
type AllocationStore interface {
	ListAllocations(ctx context.Context) ([]model.Allocation, error)
	ListAllocationsForProfessor(ctx context.Context, professorID string) ([]model.Allocation, error)
}

// DaySelector движок распределения
type DaySelector interface {
	SelectDay(ctx context.Context, req allocation.Request) (*allocation.Result, error)
}

// Dashboard сводка для преподавателя
type Dashboard struct {
	Professor   model.Professor
	Required    int
	Allocations []model.Allocation
	// AvailableWeekdays дни, на которые есть слоты экзаменов, в календарном порядке
	AvailableWeekdays []string
	SlotsPerDay       map[string]int
	Timetable         []model.TimetableEntry
}

// Remaining сколько дежурств осталось взять
func (d *Dashboard) Remaining() int {
	if n := d.Required - len(d.Allocations); n > 0 {
		return n
	}
	return 0
}

// AllocatedOn есть ли уже назначение на этот день
func (d *Dashboard) AllocatedOn(weekday string) bool {
	for _, a := range d.Allocations {
		if model.SameWeekday(a.Weekday, weekday) {
			return true
		}
	}
	return false
}

// ProfessorService сценарии преподавателя: сводка и выбор дня дежурства
type ProfessorService struct {
	professors  ProfessorStore
	allocations AllocationStore
	slots       ExamSlotStore
	timetable   TimetableStore
	engine      DaySelector
	logger      *zap.Logger
}

func NewProfessorService(
	professors ProfessorStore,
	allocations AllocationStore,
	slots ExamSlotStore,
	timetable TimetableStore,
	engine DaySelector,
	logger *zap.Logger,
) *ProfessorService {
	return &ProfessorService{
		professors:  professors,
		allocations: allocations,
		slots:       slots,
		timetable:   timetable,
		engine:      engine,
		logger:      logger,
	}
}

// GetByChannel находит преподавателя по чату Telegram
func (s *ProfessorService) GetByChannel(ctx context.Context, channel string) (*model.Professor, error) {
	professor, err := s.professors.GetByContactChannel(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("get professor: %w", err)
	}
	if professor == nil {
		return nil, ErrProfessorNotFound
	}
	return professor, nil
}

// Dashboard собирает нагрузку, назначения и доступные дни
func (s *ProfessorService) Dashboard(ctx context.Context, professor *model.Professor) (*Dashboard, error) {
	var (
		allocations []model.Allocation
		slots       []model.ExamSlot
		timetable   []model.TimetableEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allocations, err = s.allocations.ListAllocationsForProfessor(gctx, professor.ID)
		if err != nil {
			return fmt.Errorf("list allocations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		slots, err = s.slots.List(gctx)
		if err != nil {
			return fmt.Errorf("list exam slots: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		timetable, err = s.timetable.ListByProfessor(gctx, professor.ID)
		if err != nil {
			return fmt.Errorf("list timetable: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perDay := SlotsPerDay(slots)
	return &Dashboard{
		Professor:         *professor,
		Required:          model.RequiredSlots(professor.Designation),
		Allocations:       allocations,
		AvailableWeekdays: SortedWeekdays(perDay),
		SlotsPerDay:       perDay,
		Timetable:         timetable,
	}, nil
}

// SelectDay передаёт выбор дня движку распределения
func (s *ProfessorService) SelectDay(ctx context.Context, channel, weekday string, confirmed bool) (*allocation.Result, error) {
	if _, ok := model.ParseWeekday(weekday); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, weekday)
	}

	professor, err := s.GetByChannel(ctx, channel)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.SelectDay(ctx, allocation.Request{
		Professor: *professor,
		Weekday:   weekday,
		Confirmed: confirmed,
	})
	if err != nil {
		s.logger.Error("Day selection failed",
			zap.String("professor_id", professor.ID),
			zap.String("weekday", weekday),
			zap.Error(err))
		return nil, err
	}

	return result, nil
}

// SlotsPerDay количество слотов экзаменов на каждый день недели
func SlotsPerDay(slots []model.ExamSlot) map[string]int {
	perDay := make(map[string]int)
	for _, slot := range slots {
		perDay[model.NormalizeWeekday(slot.Weekday)]++
	}
	return perDay
}

// SortedWeekdays ключи в календарном порядке, начиная с понедельника
func SortedWeekdays(perDay map[string]int) []string {
	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return model.WeekdayIndex(days[i]) < model.WeekdayIndex(days[j])
	})
	return days
}
