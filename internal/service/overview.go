package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"golang.org/x/sync/errgroup"
)

// Overview сводка для администратора
type Overview struct {
	Departments int
	Professors  int
	Classrooms  int
	ExamSlots   int
	Allocations int
	Waiting     int
	// Utilization занятость аудиторий по кафедрам, по алфавиту
	Utilization []model.DepartmentUtilization
}

// Overview считает справочники, назначения и занятость аудиторий по кафедрам
func (s *CatalogService) Overview(ctx context.Context) (*Overview, error) {
	var (
		professors  []model.Professor
		classrooms  []model.Classroom
		slots       []model.ExamSlot
		allocations []model.Allocation
		waiting     []model.EmergencyPoolEntry
		utilization []model.DepartmentUtilization
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if professors, err = s.professors.List(gctx); err != nil {
			return fmt.Errorf("list professors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if classrooms, err = s.classrooms.List(gctx); err != nil {
			return fmt.Errorf("list classrooms: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if slots, err = s.slots.List(gctx); err != nil {
			return fmt.Errorf("list exam slots: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if allocations, err = s.allocations.ListAllocations(gctx); err != nil {
			return fmt.Errorf("list allocations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if waiting, err = s.pool.ListWaiting(gctx); err != nil {
			return fmt.Errorf("list waiting pool: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if utilization, err = s.classrooms.UtilizationByDepartment(gctx); err != nil {
			return fmt.Errorf("classroom utilization: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Departments: countDepartments(professors, classrooms),
		Professors:  len(professors),
		Classrooms:  len(classrooms),
		ExamSlots:   len(slots),
		Allocations: len(allocations),
		Waiting:     len(waiting),
		Utilization: utilization,
	}, nil
}

// countDepartments отдельной таблицы кафедр нет, считаем по преподавателям и аудиториям
func countDepartments(professors []model.Professor, classrooms []model.Classroom) int {
	seen := make(map[string]struct{})
	add := func(name string) {
		if name = strings.TrimSpace(name); name != "" {
			seen[name] = struct{}{}
		}
	}
	for _, p := range professors {
		add(p.Department)
	}
	for _, c := range classrooms {
		add(c.Department)
	}
	return len(seen)
}
