package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/repository"
)

var errBoom = errors.New("boom")

type fakeProfessors struct {
	mu        sync.Mutex
	items     []model.Professor
	createErr error
}

func (f *fakeProfessors) Create(ctx context.Context, p *model.Professor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.items {
		if existing.ContactChannel == p.ContactChannel {
			return repository.ErrDuplicate
		}
	}
	f.items = append(f.items, *p)
	return nil
}

func (f *fakeProfessors) GetByID(ctx context.Context, id string) (*model.Professor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfessors) GetByContactChannel(ctx context.Context, channel string) (*model.Professor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ContactChannel == channel {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfessors) List(ctx context.Context) ([]model.Professor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Professor(nil), f.items...), nil
}

type fakeClassrooms struct {
	items       []model.Classroom
	utilization []model.DepartmentUtilization
	err         error
}

func (f *fakeClassrooms) Create(ctx context.Context, c *model.Classroom) error {
	f.items = append(f.items, *c)
	return nil
}

func (f *fakeClassrooms) List(ctx context.Context) ([]model.Classroom, error) {
	return f.items, nil
}

func (f *fakeClassrooms) UtilizationByDepartment(ctx context.Context) ([]model.DepartmentUtilization, error) {
	return f.utilization, f.err
}

type fakeSlots struct {
	items   []model.ExamSlot
	listErr error
}

func (f *fakeSlots) Create(ctx context.Context, s *model.ExamSlot) error {
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSlots) List(ctx context.Context) ([]model.ExamSlot, error) {
	return f.items, f.listErr
}

type fakeTimetable struct {
	items []model.TimetableEntry
}

func (f *fakeTimetable) Create(ctx context.Context, e *model.TimetableEntry) error {
	f.items = append(f.items, *e)
	return nil
}

func (f *fakeTimetable) ListByProfessor(ctx context.Context, professorID string) ([]model.TimetableEntry, error) {
	var out []model.TimetableEntry
	for _, e := range f.items {
		if e.ProfessorID == professorID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAllocations struct {
	items []model.Allocation
	err   error
}

func (f *fakeAllocations) ListAllocations(ctx context.Context) ([]model.Allocation, error) {
	return f.items, f.err
}

func (f *fakeAllocations) ListAllocationsForProfessor(ctx context.Context, professorID string) ([]model.Allocation, error) {
	var out []model.Allocation
	for _, a := range f.items {
		if a.ProfessorID == professorID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePool struct {
	items []model.EmergencyPoolEntry
	err   error
}

func (f *fakePool) ListWaiting(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	return f.items, f.err
}

type fakeEngine struct {
	requests []allocation.Request
	result   *allocation.Result
	err      error
}

func (f *fakeEngine) SelectDay(ctx context.Context, req allocation.Request) (*allocation.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}
